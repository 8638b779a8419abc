package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/domain/quote"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// QuoteService manages the quote lifecycle. A quote freezes the
// application payload, the breakdown and the config version at
// creation; only the status moves afterwards.
type QuoteService interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	ListQuotes(ctx context.Context, filter quote.Filter) (*dto.ListQuotesResponse, error)
	Transition(ctx context.Context, id string, next types.QuoteStatus) (*dto.QuoteResponse, error)
	RecomputeForAudit(ctx context.Context, id string) (*dto.QuoteAuditResponse, error)
	ExpireStaleDrafts(ctx context.Context) (*dto.ExpireDraftsResponse, error)
}

type quoteService struct {
	ServiceParams
	ratingService RatingService
	configService PricingConfigService
}

func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{
		ServiceParams: params,
		ratingService: NewRatingService(params),
		configService: NewPricingConfigService(params),
	}
}

// CreateQuote prices the application against the current config and
// stores the result as a draft
func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pin the as-of instant into the stored payload so replaying it
	// later reproduces the same ages and factors.
	application, err := pinAsOf(req.Application, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result, err := s.ratingService.ComputePremium(ctx, dto.ComputePremiumRequest{
		ProductType: req.ProductType,
		Application: application,
	})
	if err != nil {
		return nil, err
	}

	q := quote.NewQuote(ctx, req.ProductType, application, result.Breakdown, result.ConfigVersion)
	if err := s.QuoteRepo.Create(ctx, q); err != nil {
		return nil, err
	}

	s.Logger.Infow("created quote",
		"quote_id", q.ID,
		"quote_number", q.QuoteNumber,
		"product_type", q.ProductType,
		"config_version", q.ConfigVersion,
		"total_premium", result.Breakdown.TotalPremium)

	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, filter quote.Filter) (*dto.ListQuotesResponse, error) {
	quotes, err := s.QuoteRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.QuoteResponse, len(quotes))
	for i, q := range quotes {
		items[i] = &dto.QuoteResponse{Quote: q}
	}

	return &dto.ListQuotesResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *quoteService) Transition(ctx context.Context, id string, next types.QuoteStatus) (*dto.QuoteResponse, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := q.TransitionTo(next); err != nil {
		return nil, err
	}
	q.UpdatedAt = time.Now().UTC()
	q.UpdatedBy = types.GetUserID(ctx)

	if err := s.QuoteRepo.UpdateStatus(ctx, q); err != nil {
		return nil, err
	}

	s.Logger.Infow("quote status changed",
		"quote_id", q.ID,
		"status", q.Status)

	return &dto.QuoteResponse{Quote: q}, nil
}

// RecomputeForAudit replays the stored application against the stored
// config version and reports whether the result matches the stored
// breakdown. The stored quote is never modified.
func (s *quoteService) RecomputeForAudit(ctx context.Context, id string) (*dto.QuoteAuditResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configService.GetVersion(ctx, q.ConfigVersion)
	if err != nil {
		return nil, err
	}

	recomputed, err := s.ratingService.ComputeWithConfig(cfg, q.ProductType, q.ApplicationData, q.CreatedAt)
	if err != nil {
		return nil, err
	}

	stored, err := jsoniter.Marshal(q.Breakdown)
	if err != nil {
		return nil, err
	}
	replayed, err := jsoniter.Marshal(recomputed)
	if err != nil {
		return nil, err
	}
	matches := bytes.Equal(stored, replayed)

	if !matches {
		s.Logger.Warnw("quote audit mismatch",
			"quote_id", q.ID,
			"config_version", q.ConfigVersion)
	}

	return &dto.QuoteAuditResponse{
		QuoteID:       q.ID,
		ConfigVersion: q.ConfigVersion,
		Matches:       matches,
		Recomputed:    recomputed,
	}, nil
}

func pinAsOf(application json.RawMessage, asOf time.Time) (json.RawMessage, error) {
	var payload map[string]any
	if err := jsoniter.Unmarshal(application, &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Application payload is not a JSON object").
			Mark(ierr.ErrValidation)
	}
	if raw, ok := payload["as_of"]; ok {
		if str, isStr := raw.(string); !isStr || str != "" {
			return application, nil
		}
	}
	payload["as_of"] = asOf.Format(time.RFC3339Nano)
	pinned, err := jsoniter.Marshal(payload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to re-encode application payload").
			Mark(ierr.ErrSystem)
	}
	return pinned, nil
}

// ExpireStaleDrafts expires drafts older than the configured validity
// window. Quotes already past draft are left alone.
func (s *quoteService) ExpireStaleDrafts(ctx context.Context) (*dto.ExpireDraftsResponse, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.Config.Quote.ValidityDays)

	drafts, err := s.QuoteRepo.List(ctx, quote.Filter{
		Status:        types.QuoteStatusDraft,
		CreatedBefore: cutoff,
	})
	if err != nil {
		return nil, err
	}

	expired := 0
	for _, q := range drafts {
		if err := q.TransitionTo(types.QuoteStatusExpired); err != nil {
			continue
		}
		q.UpdatedAt = time.Now().UTC()
		if err := s.QuoteRepo.UpdateStatus(ctx, q); err != nil {
			s.Logger.Errorw("failed to expire draft quote",
				"quote_id", q.ID,
				"error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.Logger.Infow("expired stale draft quotes", "count", expired)
	}

	return &dto.ExpireDraftsResponse{Expired: expired}, nil
}
