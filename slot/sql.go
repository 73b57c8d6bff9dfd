package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

type dialect struct {
	driver     Driver
	sqlDriver  string
	blobType   string
	positional bool
}

var (
	sqliteDialect   = dialect{driver: DriverSQLite, sqlDriver: "sqlite", blobType: "BLOB"}
	postgresDialect = dialect{driver: DriverPostgres, sqlDriver: "pgx", blobType: "BYTEA", positional: true}
)

// rebind rewrites '?' placeholders to $n for drivers that need it.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQL keeps every save as one row of a "saves" table.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (or creates) a sqlite database file.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = "saves.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	return openSQL(ctx, sqliteDialect, path)
}

// OpenPostgres connects to Postgres through the pgx driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn required")
	}
	return openSQL(ctx, postgresDialect, dsn)
}

func openSQL(ctx context.Context, d dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		payload `+d.blobType+` NOT NULL,
		modified BIGINT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}
	return &SQL{db: db, dialect: d}, nil
}

func (s *SQL) Driver() Driver { return s.dialect.driver }

// Close releases the database handle.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) Write(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(`INSERT INTO saves (name, payload, modified) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, modified = excluded.modified`),
		name, data, time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("write save %s: %w", name, err)
	}
	return nil
}

func (s *SQL) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT payload FROM saves WHERE name = ?`), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", name, err)
	}
	return data, nil
}

func (s *SQL) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, length(payload), modified FROM saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []Info
	for rows.Next() {
		var (
			info     Info
			modified int64
		)
		if err := rows.Scan(&info.Name, &info.Size, &modified); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		info.Modified = time.Unix(0, modified).UTC()
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *SQL) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM saves WHERE name = ?`), name)
	if err != nil {
		return false, fmt.Errorf("delete save %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
