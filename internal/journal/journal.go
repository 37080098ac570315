// Package journal keeps an optional Postgres log of served predictions.
package journal

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cropupgrad-backend/internal/crop"

	"github.com/jmoiron/sqlx"
)

// ErrUnavailable is returned when no database is configured.
var ErrUnavailable = errors.New("prediction journal unavailable")

// MaxRecent caps how many entries Recent returns.
const MaxRecent = 500

// Improvements is stored as a JSON array.
type Improvements []string

func (i Improvements) Value() (driver.Value, error) {
	if i == nil {
		i = Improvements{}
	}
	b, err := json.Marshal([]string(i))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Improvements) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*i = Improvements{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan improvements: unsupported type %T", src)
	}
	return json.Unmarshal(raw, (*[]string)(i))
}

// Entry is one served prediction.
type Entry struct {
	ID int64 `json:"id" db:"id"`
	crop.FeatureVector
	PredictedCrop string       `json:"predicted_crop" db:"predicted_crop"`
	Improvements  Improvements `json:"improvements" db:"improvements"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

type Repository interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Compile-time check
var _ Repository = (*PostgresRepository)(nil)

// PostgresRepository implements Repository with sqlx. A nil *sqlx.DB makes
// every call return ErrUnavailable.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Enabled reports whether a database is attached.
func (r *PostgresRepository) Enabled() bool {
	return r != nil && r.db != nil
}

// Record inserts e. A zero CreatedAt is set to now.
func (r *PostgresRepository) Record(ctx context.Context, e Entry) error {
	if !r.Enabled() {
		return ErrUnavailable
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO prediction_log (
			nitrogen, phosphorus, potassium, temperature, humidity, ph_value, rainfall,
			predicted_crop, improvements, created_at
		) VALUES (
			:nitrogen, :phosphorus, :potassium, :temperature, :humidity, :ph_value, :rainfall,
			:predicted_crop, :improvements, :created_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, e); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. limit is clamped to
// [1, MaxRecent].
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !r.Enabled() {
		return nil, ErrUnavailable
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxRecent {
		limit = MaxRecent
	}

	query := `
		SELECT id, nitrogen, phosphorus, potassium, temperature, humidity, ph_value, rainfall,
			predicted_crop, improvements, created_at
		FROM prediction_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}
	return entries, nil
}
