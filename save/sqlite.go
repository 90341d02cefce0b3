package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	name TEXT PRIMARY KEY,
	id   TEXT NOT NULL,
	data TEXT NOT NULL
)`

const upsertSave = `INSERT INTO saves (name, id, data) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET id = excluded.id, data = excluded.data`

// SQLiteStore keeps every save in one SQLite database. Each row holds the
// same TOML document the file store writes.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and creates the saves table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) List(ctx context.Context) ([]*GameSave, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT data FROM saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var saves []*GameSave
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		save, err := decode([]byte(data))
		if err != nil {
			return nil, err
		}
		saves = append(saves, save)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return saves, nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (*GameSave, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	var data string
	err = s.sqlDB.QueryRowContext(ctx, `SELECT data FROM saves WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load save %q: %w", name, err)
	}
	return decode([]byte(data))
}

func (s *SQLiteStore) Write(ctx context.Context, save *GameSave) error {
	name, err := validName(save)
	if err != nil {
		return err
	}
	data, err := encode(save)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		upsertSave,
		name,
		save.ID.String(),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("write save %q: %w", save.Name, err)
	}
	return nil
}

func (s *SQLiteStore) WriteAll(ctx context.Context, saves []*GameSave) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, save := range saves {
		name, err := validName(save)
		if err != nil {
			return err
		}
		data, err := encode(save)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			upsertSave,
			name,
			save.ID.String(),
			string(data),
		); err != nil {
			return fmt.Errorf("write save %q: %w", save.Name, err)
		}
	}
	return tx.Commit()
}
