package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
)

// factStore implements facts.Store on a SQLite database.
type factStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite-backed fact store with WAL mode
// enabled.
func Open(ctx context.Context, path string) (facts.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &factStore{db: db}, nil
}

// Close closes the database connection.
func (s *factStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS fact_triples (
	relation TEXT NOT NULL,
	subject TEXT NOT NULL,
	object TEXT NOT NULL,
	PRIMARY KEY(relation, subject, object)
);

CREATE INDEX IF NOT EXISTS fact_triples_by_subject
	ON fact_triples(relation, subject);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Assert inserts a fact; re-asserting is a no-op.
func (s *factStore) Assert(ctx context.Context, f facts.Fact) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO fact_triples (relation, subject, object) VALUES (?, ?, ?)
ON CONFLICT(relation, subject, object) DO NOTHING;
`, f.Relation, f.Subject, f.Object)
	return err
}

// Holds reports whether the exact fact is stored.
func (s *factStore) Holds(ctx context.Context, f facts.Fact) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
SELECT 1 FROM fact_triples WHERE relation=? AND subject=? AND object=?
`, f.Relation, f.Subject, f.Object).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Subjects returns the distinct subjects of a relation, sorted.
func (s *factStore) Subjects(ctx context.Context, relation string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT DISTINCT subject FROM fact_triples WHERE relation=? ORDER BY subject
`, relation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Objects returns the objects related to a subject, sorted.
func (s *factStore) Objects(ctx context.Context, relation, subject string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT object FROM fact_triples WHERE relation=? AND subject=? ORDER BY object
`, relation, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
