// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgreSQL is the plain database/sql word store, for deployments that
// prefer raw SQL over GORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS catalogs (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) UNIQUE NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS catalog_entries (
            id SERIAL PRIMARY KEY,
            catalog_id INTEGER NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
            text VARCHAR(255) NOT NULL,
            position INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_catalogs_name ON catalogs(name);
        CREATE INDEX IF NOT EXISTS idx_catalog_entries_catalog_id ON catalog_entries(catalog_id);
    `)

	return err
}

// SaveCatalog upserts the named catalog and replaces its entries.
func (p *PostgreSQL) SaveCatalog(name string, wordTexts []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var catalogID int64
	err = tx.QueryRowContext(ctx, `
        INSERT INTO catalogs (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
        RETURNING id
    `, name).Scan(&catalogID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM catalog_entries WHERE catalog_id = $1`, catalogID); err != nil {
		return err
	}

	for i, text := range wordTexts {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO catalog_entries (catalog_id, text, position)
            VALUES ($1, $2, $3)
        `, catalogID, text, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCatalog returns the words of the named catalog in stored order.
func (p *PostgreSQL) LoadCatalog(name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var catalogID int64
	err := p.db.QueryRowContext(ctx,
		`SELECT id FROM catalogs WHERE name = $1`, name).Scan(&catalogID)
	if err == sql.ErrNoRows {
		return nil, ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, `
        SELECT text FROM catalog_entries
        WHERE catalog_id = $1 ORDER BY position ASC
    `, catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// ListCatalogs returns every stored catalog name.
func (p *PostgreSQL) ListCatalogs() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `SELECT name FROM catalogs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// DeleteCatalog removes the named catalog; entries cascade.
func (p *PostgreSQL) DeleteCatalog(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := p.db.ExecContext(ctx, `DELETE FROM catalogs WHERE name = $1`, name)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCatalogNotFound
	}
	return nil
}

// Close releases the connection pool.
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
