package sqlite

// Schema DDL. position keeps the table order the caller saved.
const (
	createPantry = `CREATE TABLE IF NOT EXISTS pantry (
    position INTEGER PRIMARY KEY,
    item TEXT NOT NULL,
    expiration_date TEXT NOT NULL
);`

	selectPantry = `SELECT item, expiration_date FROM pantry ORDER BY position`
	deletePantry = `DELETE FROM pantry`
	insertPantry = `INSERT INTO pantry (position, item, expiration_date) VALUES (?, ?, ?)`
)
