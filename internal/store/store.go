// Package store persists fingerprint templates in a local SQLite database.
// The sensor itself never stores anything; every enrolled template lives
// here, keyed by a caller-chosen label, alongside its digest for integrity
// checks.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/fingermark/internal/fingerprint"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("store: template not found")

// ErrDuplicateLabel is returned when inserting a record whose label is
// already taken.
var ErrDuplicateLabel = errors.New("store: label already exists")

// Record is one stored template with its metadata.
type Record struct {
	ID        uuid.UUID
	Label     string
	Template  fingerprint.Template
	Digest    fingerprint.Digest
	Truncated bool
	CreatedAt time.Time
}

// Store is a handle to the template database.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the template database at path and
// applies any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Insert stores a new template under the given label and returns the
// record's generated ID.
func (s *Store) Insert(label string, tpl fingerprint.Template, truncated bool) (uuid.UUID, error) {
	id := uuid.New()
	digest := fingerprint.Hash(tpl)

	_, err := s.Exec(
		`INSERT INTO templates (template_id, label, template, digest, truncated)
		 VALUES (?, ?, ?, ?, ?)`,
		id.String(), label, tpl[:], digest[:], truncated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		return uuid.Nil, fmt.Errorf("insert template: %w", err)
	}
	return id, nil
}

// GetByLabel returns the record stored under label.
func (s *Store) GetByLabel(label string) (*Record, error) {
	row := s.QueryRow(
		`SELECT template_id, label, template, digest, truncated, created_at
		 FROM templates WHERE label = ?`, label)
	return scanRecord(row)
}

// GetByID returns the record with the given ID.
func (s *Store) GetByID(id uuid.UUID) (*Record, error) {
	row := s.QueryRow(
		`SELECT template_id, label, template, digest, truncated, created_at
		 FROM templates WHERE template_id = ?`, id.String())
	return scanRecord(row)
}

// List returns all stored records, newest first.
func (s *Store) List() ([]Record, error) {
	rows, err := s.Query(
		`SELECT template_id, label, template, digest, truncated, created_at
		 FROM templates ORDER BY created_at DESC, label`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Delete removes the record stored under label. Deleting a label that does
// not exist returns ErrNotFound.
func (s *Store) Delete(label string) error {
	res, err := s.Exec(`DELETE FROM templates WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		idStr     string
		label     string
		tplBytes  []byte
		digBytes  []byte
		truncated bool
		createdAt time.Time
	)
	if err := row.Scan(&idStr, &label, &tplBytes, &digBytes, &truncated, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse template id %q: %w", idStr, err)
	}
	if len(tplBytes) != fingerprint.TemplateSize {
		return nil, fmt.Errorf("stored template is %d bytes, want %d", len(tplBytes), fingerprint.TemplateSize)
	}
	if len(digBytes) != fingerprint.DigestSize {
		return nil, fmt.Errorf("stored digest is %d bytes, want %d", len(digBytes), fingerprint.DigestSize)
	}

	rec := &Record{
		ID:        id,
		Label:     label,
		Truncated: truncated,
		CreatedAt: createdAt,
	}
	copy(rec.Template[:], tplBytes)
	copy(rec.Digest[:], digBytes)

	// A stored record that no longer hashes to its recorded digest has
	// been corrupted at rest.
	if !fingerprint.Hash(rec.Template).Equal(rec.Digest) {
		return nil, fmt.Errorf("template %q failed digest verification", label)
	}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures by message; the
	// driver does not export typed errors for them.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
