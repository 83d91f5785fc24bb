package sqlite

import "database/sql"

// schema sets up the database tables. It runs on startup to ensure tables exist.
// Currency columns are TEXT holding exact decimal strings.
// IMPORTANT: participants must be created BEFORE expenses due to the spent_by foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS trips (
    name TEXT PRIMARY KEY,
    start_km INTEGER NOT NULL DEFAULT 0,
    end_km INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    trip_name TEXT NOT NULL,
    name TEXT NOT NULL,
    contact TEXT NOT NULL DEFAULT '',
    mode TEXT NOT NULL CHECK (mode IN ('shared', 'fixed')),
    fixed_amount TEXT NOT NULL DEFAULT '0',
    created_at INTEGER NOT NULL,
    PRIMARY KEY (trip_name, name),
    FOREIGN KEY (trip_name) REFERENCES trips(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    trip_name TEXT NOT NULL,
    date TEXT NOT NULL,
    spent_by TEXT NOT NULL,
    amount TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    remarks TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (trip_name) REFERENCES trips(name) ON DELETE CASCADE,
    FOREIGN KEY (trip_name, spent_by) REFERENCES participants(trip_name, name)
);

CREATE INDEX IF NOT EXISTS idx_participants_trip_name ON participants(trip_name);
CREATE INDEX IF NOT EXISTS idx_expenses_trip_name ON expenses(trip_name);
CREATE INDEX IF NOT EXISTS idx_expenses_spent_by ON expenses(trip_name, spent_by);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
