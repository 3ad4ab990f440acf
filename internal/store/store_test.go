package store

import (
	"context"
	"testing"
	"time"

	"github.com/sandol-bot/sandol/internal/domain"
	"github.com/sandol-bot/sandol/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func registration(id, name string) domain.Registration {
	return domain.Registration{
		ID:             id,
		Name:           name,
		PricePerPerson: 6000,
		Lunch:          domain.Hours{Open: domain.Clock{Hour: 11, Minute: 30}, Close: domain.Clock{Hour: 14}},
		Dinner:         domain.Hours{Open: domain.Clock{Hour: 17}, Close: domain.Clock{Hour: 19, Minute: 30}},
	}
}

// approved registers and approves a restaurant in one step.
func approved(t *testing.T, db *DB, id, name string) *domain.Restaurant {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.SaveRegistration(ctx, registration(id, name)))
	r, err := db.ApproveRegistration(ctx, id, domain.OnCampus)
	require.NoError(t, err)
	return r
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
	assert.NoError(t, db.Ping(context.Background()))
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/nested/sandol.db"
	db, err := Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)
	require.NoError(t, db.SaveRegistration(context.Background(), registration("u1", "학생식당")))
	require.NoError(t, db.Close())

	db, err = Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)
	defer db.Close()
	got, err := db.GetRegistration(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "학생식당", got.Name)
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	err := db.migrate()
	require.NoError(t, err)

	var count int
	err = db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_TablesExist(t *testing.T) {
	db := testDB(t)

	for _, table := range []string{"registrations", "restaurants", "menus"} {
		var name string
		err := db.sql.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

// --- Registration tests ---

func TestRegistration_SaveAndGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	reg := registration("u1", "학생식당")
	reg.CreatedAt = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, db.SaveRegistration(ctx, reg))

	got, err := db.GetRegistration(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, reg, *got)
}

func TestRegistration_SaveReplaces(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRegistration(ctx, registration("u1", "old")))
	require.NoError(t, db.SaveRegistration(ctx, registration("u1", "new")))

	list, err := db.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Name)
}

func TestRegistration_ListOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		r := registration(id, id)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.SaveRegistration(ctx, r))
	}

	list, err := db.ListRegistrations(ctx)
	require.NoError(t, err)
	var ids []string
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestRegistration_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetRegistration(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, db.DeleteRegistration(ctx, "nobody"), domain.ErrNotFound)
}

func TestRegistration_Delete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRegistration(ctx, registration("u1", "학생식당")))
	require.NoError(t, db.DeleteRegistration(ctx, "u1"))

	list, err := db.ListRegistrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegistration_Approve(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRegistration(ctx, registration("u1", "학생식당")))
	r, err := db.ApproveRegistration(ctx, "u1", domain.OffCampus)
	require.NoError(t, err)
	assert.Equal(t, domain.OffCampus, r.Location)

	_, err = db.GetRegistration(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := db.GetRestaurant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "학생식당", got.Name)
	assert.Equal(t, 6000, got.PricePerPerson)
	assert.Equal(t, domain.Clock{Hour: 11, Minute: 30}, got.Lunch.Open)
	assert.True(t, got.RegisteredAt.IsZero())
}

func TestRegistration_ApproveMissing(t *testing.T) {
	db := testDB(t)
	_, err := db.ApproveRegistration(context.Background(), "nobody", domain.OnCampus)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Restaurant tests ---

func TestRestaurant_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetRestaurant(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = db.FindRestaurant(ctx, "없는 식당")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurant_FindByName(t *testing.T) {
	db := testDB(t)
	approved(t, db, "u1", "학생식당")

	got, err := db.FindRestaurant(context.Background(), "학생식당")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestRestaurant_ListOrderedByName(t *testing.T) {
	db := testDB(t)
	approved(t, db, "u1", "b식당")
	approved(t, db, "u2", "a식당")

	list, err := db.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a식당", list[0].Name)
	assert.Equal(t, "b식당", list[1].Name)
}

// --- Menu tests ---

func TestMenu_DraftLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	approved(t, db, "u1", "학생식당")

	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "김밥"))
	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "라면"))
	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Dinner, "돈까스"))

	err := db.AddDraftMenu(ctx, "u1", domain.Lunch, "김밥")
	assert.ErrorIs(t, err, domain.ErrDuplicateMenu)

	lunch, dinner, err := db.DraftMenus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"김밥", "라면"}, lunch)
	assert.Equal(t, []string{"돈까스"}, dinner)

	require.NoError(t, db.DeleteDraftMenu(ctx, "u1", domain.Lunch, "김밥"))
	assert.ErrorIs(t, db.DeleteDraftMenu(ctx, "u1", domain.Lunch, "김밥"), domain.ErrNotFound)

	lunch, _, err = db.DraftMenus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"라면"}, lunch)

	require.NoError(t, db.ClearDraftMenus(ctx, "u1"))
	lunch, dinner, err = db.DraftMenus(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lunch)
	assert.Empty(t, dinner)
}

func TestMenu_SameNameDifferentMeal(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	approved(t, db, "u1", "학생식당")

	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "김밥"))
	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Dinner, "김밥"))
}

func TestMenu_Publish(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	approved(t, db, "u1", "학생식당")

	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "김밥"))
	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Dinner, "돈까스"))

	at := time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)
	require.NoError(t, db.PublishMenus(ctx, "u1", at))

	r, err := db.GetRestaurant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"김밥"}, r.LunchMenu)
	assert.Equal(t, []string{"돈까스"}, r.DinnerMenu)
	assert.True(t, at.Equal(r.RegisteredAt))

	// Editing drafts leaves the published menu alone until the next publish.
	require.NoError(t, db.ClearDraftMenus(ctx, "u1"))
	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "라면"))
	r, err = db.GetRestaurant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"김밥"}, r.LunchMenu)

	require.NoError(t, db.PublishMenus(ctx, "u1", at.Add(time.Hour)))
	r, err = db.GetRestaurant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"라면"}, r.LunchMenu)
	assert.Empty(t, r.DinnerMenu)
}

func TestMenu_PublishUnknownRestaurant(t *testing.T) {
	db := testDB(t)
	err := db.PublishMenus(context.Background(), "nobody", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenu_Search(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	approved(t, db, "u1", "학생식당")
	approved(t, db, "u2", "교직원식당")

	require.NoError(t, db.AddDraftMenu(ctx, "u1", domain.Lunch, "참치김밥"))
	require.NoError(t, db.AddDraftMenu(ctx, "u2", domain.Dinner, "김밥"))
	require.NoError(t, db.AddDraftMenu(ctx, "u2", domain.Dinner, "100%_주스"))
	require.NoError(t, db.PublishMenus(ctx, "u1", time.Now()))

	names, err := db.SearchMenu(ctx, "김밥")
	require.NoError(t, err)
	assert.Equal(t, []string{"학생식당"}, names, "drafts are not searchable")

	require.NoError(t, db.PublishMenus(ctx, "u2", time.Now()))
	names, err = db.SearchMenu(ctx, "김밥")
	require.NoError(t, err)
	assert.Equal(t, []string{"교직원식당", "학생식당"}, names)

	names, err = db.SearchMenu(ctx, "%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"교직원식당"}, names)

	names, err = db.SearchMenu(ctx, "짜장")
	require.NoError(t, err)
	assert.Empty(t, names)
}
