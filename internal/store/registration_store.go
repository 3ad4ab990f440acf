package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandol-bot/sandol/internal/domain"
)

// SaveRegistration stores a pending application, replacing an earlier one
// from the same applicant.
func (db *DB) SaveRegistration(ctx context.Context, r domain.Registration) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := db.sql.ExecContext(ctx,
		`INSERT INTO registrations (id, name, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   price_per_person = excluded.price_per_person,
		   lunch_open = excluded.lunch_open,
		   lunch_close = excluded.lunch_close,
		   dinner_open = excluded.dinner_open,
		   dinner_close = excluded.dinner_close,
		   created_at = excluded.created_at`,
		r.ID, r.Name, r.PricePerPerson,
		r.Lunch.Open.String(), r.Lunch.Close.String(),
		r.Dinner.Open.String(), r.Dinner.Close.String(),
		r.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("save registration %s: %w", r.ID, err)
	}
	db.log.Debug().Str("id", r.ID).Str("name", r.Name).Msg("registration saved")
	return nil
}

// ListRegistrations returns pending applications, oldest first.
func (db *DB) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close, created_at
		 FROM registrations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []domain.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// GetRegistration returns domain.ErrNotFound when id has no pending
// application.
func (db *DB) GetRegistration(ctx context.Context, id string) (*domain.Registration, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT id, name, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close, created_at
		 FROM registrations WHERE id = ?`, id)
	return scanRegistration(row)
}

// DeleteRegistration drops a pending application.
func (db *DB) DeleteRegistration(ctx context.Context, id string) error {
	res, err := db.sql.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete registration %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ApproveRegistration turns a pending application into a restaurant at
// location and removes the application.
func (db *DB) ApproveRegistration(ctx context.Context, id string, location domain.Location) (*domain.Restaurant, error) {
	var rest *domain.Restaurant
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		reg, err := scanRegistration(tx.QueryRowContext(ctx,
			`SELECT id, name, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close, created_at
			 FROM registrations WHERE id = ?`, id))
		if err != nil {
			return err
		}
		rest = &domain.Restaurant{
			ID:             reg.ID,
			Name:           reg.Name,
			Location:       location,
			PricePerPerson: reg.PricePerPerson,
			Lunch:          reg.Lunch,
			Dinner:         reg.Dinner,
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO restaurants (id, name, location, price_per_person, lunch_open, lunch_close, dinner_open, dinner_close)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   name = excluded.name,
			   location = excluded.location,
			   price_per_person = excluded.price_per_person,
			   lunch_open = excluded.lunch_open,
			   lunch_close = excluded.lunch_close,
			   dinner_open = excluded.dinner_open,
			   dinner_close = excluded.dinner_close`,
			rest.ID, rest.Name, string(rest.Location), rest.PricePerPerson,
			rest.Lunch.Open.String(), rest.Lunch.Close.String(),
			rest.Dinner.Open.String(), rest.Dinner.Close.String(),
		); err != nil {
			return fmt.Errorf("insert restaurant %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete registration %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	db.log.Info().Str("id", id).Str("location", string(location)).Msg("restaurant approved")
	return rest, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(s scanner) (*domain.Registration, error) {
	var (
		r                  domain.Registration
		lo, lc, do, dc, at string
	)
	err := s.Scan(&r.ID, &r.Name, &r.PricePerPerson, &lo, &lc, &do, &dc, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("registration: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	if r.Lunch, err = parseHours(lo, lc); err != nil {
		return nil, err
	}
	if r.Dinner, err = parseHours(do, dc); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.DateTime, at)
	return &r, nil
}

func parseHours(open, closing string) (domain.Hours, error) {
	o, err := domain.ParseClock(open)
	if err != nil {
		return domain.Hours{}, err
	}
	c, err := domain.ParseClock(closing)
	if err != nil {
		return domain.Hours{}, err
	}
	return domain.Hours{Open: o, Close: c}, nil
}
