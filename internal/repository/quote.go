package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/patabima/patabima/internal/domain/quote"
	"github.com/patabima/patabima/internal/domain/rating"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/types"
)

type quoteRow struct {
	ID              string    `db:"id"`
	QuoteNumber     string    `db:"quote_number"`
	ProductType     string    `db:"product_type"`
	ApplicationData []byte    `db:"application_data"`
	ConfigVersion   int       `db:"config_version"`
	Breakdown       []byte    `db:"breakdown"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	CreatedBy       string    `db:"created_by"`
	UpdatedBy       string    `db:"updated_by"`
}

func (r *quoteRow) toDomain() (*quote.Quote, error) {
	var breakdown rating.PremiumBreakdown
	if err := jsoniter.Unmarshal(r.Breakdown, &breakdown); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored premium breakdown is not valid JSON").
			Mark(ierr.ErrDatabase)
	}
	return &quote.Quote{
		ID:              r.ID,
		QuoteNumber:     r.QuoteNumber,
		ProductType:     types.ProductType(r.ProductType),
		ApplicationData: json.RawMessage(r.ApplicationData),
		ConfigVersion:   r.ConfigVersion,
		Breakdown:       &breakdown,
		Status:          types.QuoteStatus(r.Status),
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}, nil
}

type quoteRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewQuoteRepository(db *sqlx.DB, log *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, log: log}
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	breakdown, err := jsoniter.Marshal(q.Breakdown)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to serialize premium breakdown").
			Mark(ierr.ErrSystem)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quotes (id, quote_number, product_type, application_data,
		                     config_version, breakdown, status,
		                     created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.QuoteNumber, q.ProductType, []byte(q.ApplicationData),
		q.ConfigVersion, breakdown, q.Status,
		q.CreatedAt, q.UpdatedAt, q.CreatedBy, q.UpdatedBy)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	var row quoteRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, quote_number, product_type, application_data,
		        config_version, breakdown, status,
		        created_at, updated_at, created_by, updated_by
		 FROM quotes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("quote not found").
				WithHintf("Quote %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load quote").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *quoteRepository) List(ctx context.Context, filter quote.Filter) ([]*quote.Quote, error) {
	query := `SELECT id, quote_number, product_type, application_data,
	                 config_version, breakdown, status,
	                 created_at, updated_at, created_by, updated_by
	          FROM quotes WHERE 1=1`
	args := []any{}

	if filter.ProductType != "" {
		args = append(args, filter.ProductType)
		query += ` AND product_type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if !filter.CreatedBefore.IsZero() {
		args = append(args, filter.CreatedBefore)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	var rows []quoteRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list quotes").
			Mark(ierr.ErrDatabase)
	}

	quotes := make([]*quote.Quote, 0, len(rows))
	for i := range rows {
		q, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// UpdateStatus writes the status and audit columns only. The frozen
// fields are never touched after creation.
func (r *quoteRepository) UpdateStatus(ctx context.Context, q *quote.Quote) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = $1, updated_at = $2, updated_by = $3 WHERE id = $4`,
		q.Status, q.UpdatedAt, q.UpdatedBy, q.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update quote status").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ierr.NewError("quote not found").
			WithHintf("Quote %s does not exist", q.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
