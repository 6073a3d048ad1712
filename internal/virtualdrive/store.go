package virtualdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/database"
)

// StoredValue is a written measure value as kept by a Store.
type StoredValue struct {
	CtrlName  string
	Name      string
	DataType  string
	Value     any
	UpdatedAt time.Time
}

// Store persists written measure values.
type Store interface {
	// Load returns every stored value.
	Load(ctx context.Context) ([]StoredValue, error)

	// Save inserts or replaces the value of one measure.
	Save(ctx context.Context, v StoredValue) error
}

// SQLiteStore keeps measure values in the measure_values table.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore returns a store backed by db. The schema must already be
// migrated.
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns every stored value, ordered by controller and measure name.
func (s *SQLiteStore) Load(ctx context.Context) ([]StoredValue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ctrl_name, name, data_type, value, updated_at
		FROM measure_values
		ORDER BY ctrl_name, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying measure values: %w", err)
	}
	defer rows.Close()

	var values []StoredValue
	for rows.Next() {
		var (
			v         StoredValue
			raw       string
			updatedAt string
		)
		if err := rows.Scan(&v.CtrlName, &v.Name, &v.DataType, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning measure value: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &v.Value); err != nil {
			return nil, fmt.Errorf("decoding value of %s/%s: %w", v.CtrlName, v.Name, err)
		}
		v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // Zero time on a malformed timestamp
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measure values: %w", err)
	}
	return values, nil
}

// Save inserts or replaces the value of one measure.
func (s *SQLiteStore) Save(ctx context.Context, v StoredValue) error {
	raw, err := json.Marshal(v.Value)
	if err != nil {
		return fmt.Errorf("encoding value of %s/%s: %w", v.CtrlName, v.Name, err)
	}
	updatedAt := v.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO measure_values (ctrl_name, name, data_type, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (ctrl_name, name) DO UPDATE SET
			data_type = excluded.data_type,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, v.CtrlName, v.Name, v.DataType, string(raw), updatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving %s/%s: %w", v.CtrlName, v.Name, err)
	}
	return nil
}
