package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandol-bot/sandol/internal/domain"
)

const restaurantColumns = `id, name, location, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close, registered_at`

// GetRestaurant returns an approved restaurant with its published menus.
func (db *DB) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	r, err := scanRestaurant(db.sql.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := db.loadMenus(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FindRestaurant looks a restaurant up by its display name.
func (db *DB) FindRestaurant(ctx context.Context, name string) (*domain.Restaurant, error) {
	r, err := scanRestaurant(db.sql.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE name = ? ORDER BY id LIMIT 1`, name))
	if err != nil {
		return nil, err
	}
	if err := db.loadMenus(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRestaurants returns every approved restaurant with published menus,
// ordered by name.
func (db *DB) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	var out []domain.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, *r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Menus are loaded after the cursor is closed; in-memory databases have
	// a single connection.
	for i := range out {
		if err := db.loadMenus(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SearchMenu returns names of restaurants whose published menu contains
// term.
func (db *DB) SearchMenu(ctx context.Context, term string) ([]string, error) {
	pattern := "%" + strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(term) + "%"
	rows, err := db.sql.QueryContext(ctx,
		`SELECT DISTINCT r.name FROM menus m JOIN restaurants r ON r.id = m.restaurant_id
		 WHERE m.draft = 0 AND m.name LIKE ? ESCAPE '\' ORDER BY r.name`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search menu %q: %w", term, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// AddDraftMenu appends name to the restaurant's unpublished menu for meal.
// It returns domain.ErrDuplicateMenu if the entry already exists.
func (db *DB) AddDraftMenu(ctx context.Context, restaurantID string, meal domain.MealType, name string) error {
	res, err := db.sql.ExecContext(ctx,
		`INSERT OR IGNORE INTO menus (restaurant_id, meal, draft, name, position)
		 SELECT ?, ?, 1, ?, COALESCE(MAX(position), 0) + 1
		 FROM menus WHERE restaurant_id = ? AND meal = ? AND draft = 1`,
		restaurantID, string(meal), name, restaurantID, string(meal))
	if err != nil {
		return fmt.Errorf("add menu %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("menu %q: %w", name, domain.ErrDuplicateMenu)
	}
	return nil
}

// DraftMenus returns the unpublished lunch and dinner menus.
func (db *DB) DraftMenus(ctx context.Context, restaurantID string) (lunch, dinner []string, err error) {
	return db.menus(ctx, restaurantID, true)
}

// DeleteDraftMenu removes one unpublished entry.
func (db *DB) DeleteDraftMenu(ctx context.Context, restaurantID string, meal domain.MealType, name string) error {
	res, err := db.sql.ExecContext(ctx,
		`DELETE FROM menus WHERE restaurant_id = ? AND meal = ? AND draft = 1 AND name = ?`,
		restaurantID, string(meal), name)
	if err != nil {
		return fmt.Errorf("delete menu %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("menu %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

// ClearDraftMenus removes every unpublished entry of a restaurant.
func (db *DB) ClearDraftMenus(ctx context.Context, restaurantID string) error {
	if _, err := db.sql.ExecContext(ctx,
		`DELETE FROM menus WHERE restaurant_id = ? AND draft = 1`, restaurantID); err != nil {
		return fmt.Errorf("clear menus %s: %w", restaurantID, err)
	}
	return nil
}

// PublishMenus replaces the published menus with the drafts and stamps the
// restaurant's registration time.
func (db *DB) PublishMenus(ctx context.Context, restaurantID string, at time.Time) error {
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE restaurants SET registered_at = ? WHERE id = ?`,
			at.UTC().Format(time.DateTime), restaurantID)
		if err != nil {
			return fmt.Errorf("stamp restaurant %s: %w", restaurantID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("restaurant %s: %w", restaurantID, domain.ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM menus WHERE restaurant_id = ? AND draft = 0`, restaurantID); err != nil {
			return fmt.Errorf("drop published menus: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO menus (restaurant_id, meal, draft, name, position)
			 SELECT restaurant_id, meal, 0, name, position FROM menus
			 WHERE restaurant_id = ? AND draft = 1`, restaurantID); err != nil {
			return fmt.Errorf("publish menus: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.Info().Str("id", restaurantID).Msg("menus published")
	return nil
}

func (db *DB) loadMenus(ctx context.Context, r *domain.Restaurant) error {
	var err error
	r.LunchMenu, r.DinnerMenu, err = db.menus(ctx, r.ID, false)
	return err
}

func (db *DB) menus(ctx context.Context, restaurantID string, draft bool) (lunch, dinner []string, err error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT meal, name FROM menus WHERE restaurant_id = ? AND draft = ? ORDER BY position, name`,
		restaurantID, draft)
	if err != nil {
		return nil, nil, fmt.Errorf("load menus %s: %w", restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var meal, name string
		if err := rows.Scan(&meal, &name); err != nil {
			return nil, nil, err
		}
		if domain.MealType(meal) == domain.Dinner {
			dinner = append(dinner, name)
		} else {
			lunch = append(lunch, name)
		}
	}
	return lunch, dinner, rows.Err()
}

func scanRestaurant(s scanner) (*domain.Restaurant, error) {
	var (
		r                  domain.Restaurant
		loc                string
		lo, lc, do, dc, at string
	)
	err := s.Scan(&r.ID, &r.Name, &loc, &r.PricePerPerson, &lo, &lc, &do, &dc, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}
	r.Location = domain.Location(loc)
	if r.Lunch, err = parseHours(lo, lc); err != nil {
		return nil, err
	}
	if r.Dinner, err = parseHours(do, dc); err != nil {
		return nil, err
	}
	if at != "" {
		r.RegisteredAt, _ = time.Parse(time.DateTime, at)
	}
	return &r, nil
}
