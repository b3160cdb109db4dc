package property

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository keeps the last catalog fetched from the API in SQLite so the
// site can start with listings when the API is unreachable.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a snapshot repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO property_snapshot
	(id, position, title, price, price_value, location, bedrooms, bathrooms, area, area_value, type, operation, image, badge, is_new, saved_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `id, title, price, price_value, location, bedrooms, bathrooms, area, area_value, type, operation, image, badge, is_new`

// scanRecord scans a listing from a database row.
func scanRecord(row interface{ Scan(...interface{}) error }) (Record, error) {
	var r Record
	var typ, op string
	var isNew int
	err := row.Scan(
		&r.ID, &r.Title, &r.Price, &r.PriceValue, &r.Location,
		&r.Bedrooms, &r.Bathrooms, &r.Area, &r.AreaValue,
		&typ, &op, &r.Image, &r.Badge, &isNew,
	)
	if err != nil {
		return Record{}, err
	}
	r.Type = Type(typ)
	r.Operation = Operation(op)
	r.IsNew = isNew != 0
	return r, nil
}

// ReplaceAll swaps the stored snapshot for records, keeping their order.
func (r *Repository) ReplaceAll(records []Record) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec("DELETE FROM property_snapshot"); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", cerr)
		}
	}()

	now := time.Now().UTC()
	for i, rec := range records {
		isNew := 0
		if rec.IsNew {
			isNew = 1
		}
		if _, err = stmt.Exec(
			rec.ID, i, rec.Title, rec.Price, rec.PriceValue, rec.Location,
			rec.Bedrooms, rec.Bathrooms, rec.Area, rec.AreaValue,
			string(rec.Type), string(rec.Operation), rec.Image, rec.Badge, isNew, now,
		); err != nil {
			return fmt.Errorf("inserting listing %d: %w", rec.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// List returns the stored snapshot in its original order.
func (r *Repository) List() (records []Record, err error) {
	query := fmt.Sprintf("SELECT %s FROM property_snapshot ORDER BY position", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot: %w", err)
	}

	return records, nil
}

// SavedAt returns when the snapshot was last written. The zero time means
// no snapshot exists.
func (r *Repository) SavedAt() (time.Time, error) {
	var savedAt time.Time
	err := r.db.QueryRow("SELECT saved_at FROM property_snapshot ORDER BY position LIMIT 1").Scan(&savedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading snapshot time: %w", err)
	}
	return savedAt, nil
}
