package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create registrations and restaurants",
		SQL: `
			CREATE TABLE registrations (
				id                TEXT PRIMARY KEY,
				name              TEXT NOT NULL,
				price_per_person  INTEGER NOT NULL,
				lunch_open        TEXT NOT NULL,
				lunch_close       TEXT NOT NULL,
				dinner_open       TEXT NOT NULL,
				dinner_close      TEXT NOT NULL,
				created_at        TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE TABLE restaurants (
				id                TEXT PRIMARY KEY,
				name              TEXT NOT NULL,
				location          TEXT NOT NULL,
				price_per_person  INTEGER NOT NULL,
				lunch_open        TEXT NOT NULL,
				lunch_close       TEXT NOT NULL,
				dinner_open       TEXT NOT NULL,
				dinner_close      TEXT NOT NULL,
				registered_at     TEXT NOT NULL DEFAULT ''
			);

			CREATE INDEX idx_restaurants_name ON restaurants (name);
		`,
	},
	{
		Version: 2,
		Name:    "create menus",
		SQL: `
			CREATE TABLE menus (
				restaurant_id  TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
				meal           TEXT NOT NULL,
				draft          INTEGER NOT NULL,
				name           TEXT NOT NULL,
				position       INTEGER NOT NULL,
				PRIMARY KEY (restaurant_id, meal, draft, name)
			);

			CREATE INDEX idx_menus_published ON menus (draft, name);
		`,
	},
}
