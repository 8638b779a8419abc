package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/types"
)

// pqUniqueViolation is the postgres error code for unique constraint
// violations. A duplicate version insert means a concurrent proposal won.
const pqUniqueViolation = "23505"

type pricingConfigRow struct {
	ID           string    `db:"id"`
	Version      int       `db:"version"`
	ProductRules []byte    `db:"product_rules"`
	UpdatedBy    string    `db:"updated_by"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *pricingConfigRow) toDomain() (*pricing.PricingConfig, error) {
	var rules map[types.ProductType]*pricing.ProductRuleSet
	if err := jsoniter.Unmarshal(r.ProductRules, &rules); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored pricing rules are not valid JSON").
			Mark(ierr.ErrDatabase)
	}
	return &pricing.PricingConfig{
		ID:           r.ID,
		Version:      r.Version,
		ProductRules: rules,
		UpdatedBy:    r.UpdatedBy,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

type pricingConfigRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewPricingConfigRepository(db *sqlx.DB, log *logger.Logger) pricing.Repository {
	return &pricingConfigRepository{db: db, log: log}
}

func (r *pricingConfigRepository) GetCurrent(ctx context.Context) (*pricing.PricingConfig, error) {
	var row pricingConfigRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, version, product_rules, updated_by, updated_at
		 FROM pricing_configs ORDER BY version DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("no pricing config installed").
				WithHint("No pricing config version exists yet").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load current pricing config").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *pricingConfigRepository) GetVersion(ctx context.Context, version int) (*pricing.PricingConfig, error) {
	var row pricingConfigRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, version, product_rules, updated_by, updated_at
		 FROM pricing_configs WHERE version = $1`, version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("pricing config version not found").
				WithHintf("Pricing config version %d does not exist", version).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load pricing config version").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *pricingConfigRepository) ListHistory(ctx context.Context) ([]*pricing.PricingConfig, error) {
	var rows []pricingConfigRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, version, product_rules, updated_by, updated_at
		 FROM pricing_configs ORDER BY version DESC`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list pricing config history").
			Mark(ierr.ErrDatabase)
	}

	configs := make([]*pricing.PricingConfig, 0, len(rows))
	for i := range rows {
		cfg, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// CreateVersion inserts a new version. The unique index on version
// turns a racing proposal into a version conflict instead of a
// duplicate row.
func (r *pricingConfigRepository) CreateVersion(ctx context.Context, cfg *pricing.PricingConfig) error {
	rules, err := jsoniter.Marshal(cfg.ProductRules)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to serialize pricing rules").
			Mark(ierr.ErrSystem)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pricing_configs (id, version, product_rules, updated_by, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		cfg.ID, cfg.Version, rules, cfg.UpdatedBy, cfg.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ierr.WithError(err).
				WithHintf("Version %d was installed by a concurrent proposal", cfg.Version).
				Mark(ierr.ErrVersionConflict)
		}
		return ierr.WithError(err).
			WithHint("Failed to install pricing config version").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
