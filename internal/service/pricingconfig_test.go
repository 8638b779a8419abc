package service

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/testutil"
	"github.com/patabima/patabima/internal/types"
)

type PricingConfigServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingConfigService
}

func TestPricingConfigService(t *testing.T) {
	suite.Run(t, new(PricingConfigServiceSuite))
}

func (s *PricingConfigServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPricingConfigService(ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		Cache:             s.GetCache(),
		PricingConfigRepo: s.GetStores().PricingConfigRepo,
		QuoteRepo:         s.GetStores().QuoteRepo,
	})

	err := s.GetStores().PricingConfigRepo.CreateVersion(s.GetContext(), pricing.DefaultConfig())
	s.Require().NoError(err)
}

func (s *PricingConfigServiceSuite) TestGetCurrent() {
	resp, err := s.service.GetCurrent(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Version)
	s.Len(resp.ProductRules, len(types.ProductTypes))
}

func (s *PricingConfigServiceSuite) TestProposeInstallsNextVersion() {
	rules := pricing.DefaultRules()
	rules[types.ProductTypeMedical].BasePremiums["basic"].Rates["individual"] = decimal.NewFromInt(20000)

	resp, err := s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: rules,
		Author:       "admin@example.com",
	})
	s.Require().NoError(err)
	s.Equal(2, resp.Version)
	s.Equal("admin@example.com", resp.UpdatedBy)

	current, err := s.service.GetCurrent(s.GetContext())
	s.NoError(err)
	s.Equal(2, current.Version)
}

func (s *PricingConfigServiceSuite) TestProposeRejectsStaleBaseVersion() {
	_, err := s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: pricing.DefaultRules(),
		Author:       "first@example.com",
	})
	s.Require().NoError(err)

	// Second editor still holds version 1
	_, err = s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: pricing.DefaultRules(),
		Author:       "second@example.com",
	})
	s.True(ierr.IsVersionConflict(err))
}

func (s *PricingConfigServiceSuite) TestProposeRejectsInvalidRules() {
	rules := pricing.DefaultRules()
	delete(rules, types.ProductTypeWIBA)

	_, err := s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: rules,
		Author:       "admin@example.com",
	})
	s.True(ierr.IsValidation(err))

	// Nothing was installed
	current, getErr := s.service.GetCurrent(s.GetContext())
	s.NoError(getErr)
	s.Equal(1, current.Version)
}

func (s *PricingConfigServiceSuite) TestHistoryNewestFirst() {
	for i := 0; i < 3; i++ {
		_, err := s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
			BaseVersion:  1 + i,
			ProductRules: pricing.DefaultRules(),
			Author:       "admin@example.com",
		})
		s.Require().NoError(err)
	}

	history, err := s.service.GetHistory(s.GetContext())
	s.Require().NoError(err)
	s.Equal(4, history.Total)
	for i, item := range history.Items {
		s.Equal(4-i, item.Version)
	}
}

func (s *PricingConfigServiceSuite) TestSupersededVersionsRemainReadable() {
	_, err := s.service.Propose(s.GetContext(), dto.ProposeConfigRequest{
		BaseVersion:  1,
		ProductRules: pricing.DefaultRules(),
		Author:       "admin@example.com",
	})
	s.Require().NoError(err)

	old, err := s.service.GetVersion(s.GetContext(), 1)
	s.NoError(err)
	s.Equal(1, old.Version)

	// Cached reads return the same content
	again, err := s.service.GetVersion(s.GetContext(), 1)
	s.NoError(err)
	s.Equal(old.Version, again.Version)
}

func (s *PricingConfigServiceSuite) TestGetVersionNotFound() {
	_, err := s.service.GetVersion(s.GetContext(), 42)
	s.True(ierr.IsNotFound(err))
}

func (s *PricingConfigServiceSuite) TestExportImportRoundTrip() {
	exported, err := s.service.Export(s.GetContext())
	s.Require().NoError(err)

	imported, err := s.service.Import(exported)
	s.Require().NoError(err)

	current, err := s.service.GetCurrent(s.GetContext())
	s.Require().NoError(err)

	s.Equal(current.Version, imported.Version)

	// Compare serialized forms; equal decimals may differ in exponent
	currentRules, err := jsoniter.Marshal(current.ProductRules)
	s.Require().NoError(err)
	importedRules, err := jsoniter.Marshal(imported.ProductRules)
	s.Require().NoError(err)
	s.JSONEq(string(currentRules), string(importedRules))
}

func (s *PricingConfigServiceSuite) TestImportRejectsGarbage() {
	_, err := s.service.Import([]byte("not json"))
	s.True(ierr.IsValidation(err))
}
