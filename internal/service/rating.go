package service

import (
	"context"
	"encoding/json"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/domain/rating"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// RatingService prices applications against a pricing config. The
// premium math itself lives in the rating package; this layer decodes
// payloads, fills the as-of clock and picks the config version.
type RatingService interface {
	ComputePremium(ctx context.Context, req dto.ComputePremiumRequest) (*dto.ComputePremiumResponse, error)
	ComputeWithConfig(cfg *pricing.PricingConfig, productType types.ProductType, application json.RawMessage, asOf time.Time) (*rating.PremiumBreakdown, error)
}

type ratingService struct {
	ServiceParams
}

func NewRatingService(params ServiceParams) RatingService {
	return &ratingService{
		ServiceParams: params,
	}
}

func (s *ratingService) ComputePremium(ctx context.Context, req dto.ComputePremiumRequest) (*dto.ComputePremiumResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.PricingConfigRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.ComputeWithConfig(cfg, req.ProductType, req.Application, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &dto.ComputePremiumResponse{
		ConfigVersion: cfg.Version,
		Breakdown:     breakdown,
	}, nil
}

// ComputeWithConfig prices one application against a specific config.
// The asOf time is used only when the payload does not carry its own,
// which keeps replays against historical versions reproducible.
func (s *ratingService) ComputeWithConfig(cfg *pricing.PricingConfig, productType types.ProductType, application json.RawMessage, asOf time.Time) (*rating.PremiumBreakdown, error) {
	switch productType {
	case types.ProductTypeMedical:
		var app rating.MedicalApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputeMedical(app, cfg)
	case types.ProductTypeWIBA:
		var app rating.WIBAApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputeWIBA(app, cfg)
	case types.ProductTypeMotor:
		var app rating.MotorApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputeMotor(app, cfg)
	case types.ProductTypeTravel:
		var app rating.TravelApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputeTravel(app, cfg)
	case types.ProductTypePersonalAccident:
		var app rating.PersonalAccidentApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputePersonalAccident(app, cfg)
	case types.ProductTypeLastExpense:
		var app rating.LastExpenseApplication
		if err := decodeApplication(application, &app); err != nil {
			return nil, err
		}
		if app.AsOf.IsZero() {
			app.AsOf = asOf
		}
		return rating.ComputeLastExpense(app, cfg)
	default:
		return nil, ierr.NewError("unsupported product type").
			WithHintf("Product type %s is not supported", productType).
			Mark(ierr.ErrValidation)
	}
}

func decodeApplication(data json.RawMessage, target any) error {
	if err := jsoniter.Unmarshal(data, target); err != nil {
		return ierr.WithError(err).
			WithHint("Application payload is not valid JSON for this product").
			Mark(ierr.ErrValidation)
	}
	return nil
}
