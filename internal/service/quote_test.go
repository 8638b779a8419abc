package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/domain/quote"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/testutil"
	"github.com/patabima/patabima/internal/types"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       QuoteService
	configService PricingConfigService
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		Cache:             s.GetCache(),
		PricingConfigRepo: s.GetStores().PricingConfigRepo,
		QuoteRepo:         s.GetStores().QuoteRepo,
	}
	s.service = NewQuoteService(params)
	s.configService = NewPricingConfigService(params)

	err := s.GetStores().PricingConfigRepo.CreateVersion(s.GetContext(), pricing.DefaultConfig())
	s.Require().NoError(err)
}

func (s *QuoteServiceSuite) medicalApplication() json.RawMessage {
	return json.RawMessage(`{
		"as_of": "2026-03-01T00:00:00Z",
		"date_of_birth": "1996-02-01T00:00:00Z",
		"gender": "male",
		"plan_type": "standard",
		"member_type": "individual"
	}`)
}

func (s *QuoteServiceSuite) createQuote() *dto.QuoteResponse {
	resp, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ProductType: types.ProductTypeMedical,
		Application: s.medicalApplication(),
	})
	s.Require().NoError(err)
	return resp
}

func (s *QuoteServiceSuite) TestCreateQuote() {
	resp := s.createQuote()

	s.Equal(types.QuoteStatusDraft, resp.Status)
	s.Equal(types.ProductTypeMedical, resp.ProductType)
	s.Equal(1, resp.ConfigVersion)
	s.NotEmpty(resp.QuoteNumber)
	s.True(resp.Breakdown.TotalPremium.Equal(decimal.NewFromInt(35000)))
}

func (s *QuoteServiceSuite) TestCreateQuoteRejectsBadApplication() {
	_, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ProductType: types.ProductTypeMedical,
		Application: json.RawMessage(`{"plan_type": "standard"}`),
	})
	s.Error(err)
}

func (s *QuoteServiceSuite) TestTransitionWalksTheLifecycle() {
	created := s.createQuote()

	for _, status := range []types.QuoteStatus{
		types.QuoteStatusApplied,
		types.QuoteStatusPaymentPending,
		types.QuoteStatusPaid,
		types.QuoteStatusActive,
	} {
		resp, err := s.service.Transition(s.GetContext(), created.ID, status)
		s.Require().NoError(err)
		s.Equal(status, resp.Status)
	}
}

func (s *QuoteServiceSuite) TestTransitionRejectsIllegalMoves() {
	created := s.createQuote()

	// draft cannot jump straight to paid
	_, err := s.service.Transition(s.GetContext(), created.ID, types.QuoteStatusPaid)
	s.True(ierr.IsInvalidTransition(err))

	// terminal states accept nothing
	_, err = s.service.Transition(s.GetContext(), created.ID, types.QuoteStatusExpired)
	s.Require().NoError(err)
	_, err = s.service.Transition(s.GetContext(), created.ID, types.QuoteStatusApplied)
	s.True(ierr.IsInvalidTransition(err))
}

func (s *QuoteServiceSuite) TestTransitionPreservesFrozenFields() {
	created := s.createQuote()

	_, err := s.service.Transition(s.GetContext(), created.ID, types.QuoteStatusApplied)
	s.Require().NoError(err)

	after, err := s.service.GetQuote(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ConfigVersion, after.ConfigVersion)
	s.JSONEq(string(created.ApplicationData), string(after.ApplicationData))
	s.True(created.Breakdown.TotalPremium.Equal(after.Breakdown.TotalPremium))
}

func (s *QuoteServiceSuite) TestAuditReproducesStoredBreakdown() {
	created := s.createQuote()

	audit, err := s.service.RecomputeForAudit(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.True(audit.Matches)
	s.Equal(created.ConfigVersion, audit.ConfigVersion)
}

func (s *QuoteServiceSuite) TestAuditSurvivesConfigChanges() {
	created := s.createQuote()

	// Double every medical rate in a new version
	rules := pricing.DefaultRules()
	for tier, bp := range rules[types.ProductTypeMedical].BasePremiums {
		for key, rate := range bp.Rates {
			bp.Rates[key] = rate.Mul(decimal.NewFromInt(2))
		}
		rules[types.ProductTypeMedical].BasePremiums[tier] = bp
	}
	_, err := s.configService.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: rules,
		Author:       "admin@example.com",
	})
	s.Require().NoError(err)

	// New quotes price against version 2
	fresh := s.createQuote()
	s.Equal(2, fresh.ConfigVersion)
	s.True(fresh.Breakdown.TotalPremium.Equal(decimal.NewFromInt(70000)))

	// The old quote still replays bit for bit against version 1
	audit, err := s.service.RecomputeForAudit(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.True(audit.Matches)
	s.True(audit.Recomputed.TotalPremium.Equal(decimal.NewFromInt(35000)))
}

func (s *QuoteServiceSuite) TestListQuotesFilters() {
	s.createQuote()
	created := s.createQuote()
	_, err := s.service.Transition(s.GetContext(), created.ID, types.QuoteStatusApplied)
	s.Require().NoError(err)

	drafts, err := s.service.ListQuotes(s.GetContext(), quote.Filter{Status: types.QuoteStatusDraft})
	s.Require().NoError(err)
	s.Equal(1, drafts.Total)

	all, err := s.service.ListQuotes(s.GetContext(), quote.Filter{ProductType: types.ProductTypeMedical})
	s.Require().NoError(err)
	s.Equal(2, all.Total)
}

func (s *QuoteServiceSuite) TestExpireStaleDrafts() {
	stale := s.createQuote()
	fresh := s.createQuote()

	// Age one draft past the validity window
	store := s.GetStores().QuoteRepo.(*testutil.InMemoryQuoteStore)
	store.SetCreatedAt(stale.ID, time.Now().UTC().AddDate(0, 0, -(s.GetConfig().Quote.ValidityDays+1)))

	resp, err := s.service.ExpireStaleDrafts(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.Expired)

	expired, err := s.service.GetQuote(s.GetContext(), stale.ID)
	s.Require().NoError(err)
	s.Equal(types.QuoteStatusExpired, expired.Status)

	untouched, err := s.service.GetQuote(s.GetContext(), fresh.ID)
	s.Require().NoError(err)
	s.Equal(types.QuoteStatusDraft, untouched.Status)
}

func (s *QuoteServiceSuite) TestGetQuoteNotFound() {
	_, err := s.service.GetQuote(s.GetContext(), "quote_missing")
	s.True(ierr.IsNotFound(err))
}
