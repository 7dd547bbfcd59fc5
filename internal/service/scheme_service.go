package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anyulbade/payment-scheme-engine/internal/dto"
	"github.com/anyulbade/payment-scheme-engine/internal/engine"
	"github.com/anyulbade/payment-scheme-engine/internal/model"
	"github.com/anyulbade/payment-scheme-engine/internal/repository"
)

type SchemeService struct {
	repo *repository.SchemeRepository
}

func NewSchemeService(repo *repository.SchemeRepository) *SchemeService {
	return &SchemeService{repo: repo}
}

// Create resolves kind defaults, validates the resulting configuration and
// persists the scheme. Validation violations are fatal on the write path.
func (s *SchemeService) Create(ctx context.Context, req *dto.SaveSchemeRequest) (*model.Scheme, error) {
	scheme := schemeFromRequest(req)
	scheme = engine.ApplyDefaults(scheme)

	if violations := engine.ValidateConfig(scheme); len(violations) > 0 {
		return nil, &engine.ConfigurationError{Violations: violations}
	}

	scheme.ID = uuid.NewString()
	if err := s.repo.Insert(ctx, &scheme); err != nil {
		return nil, err
	}

	return &scheme, nil
}

// Update is a full replace: the incoming configuration goes through the same
// defaults resolution and validation as a create, keeping the scheme ID.
func (s *SchemeService) Update(ctx context.Context, id string, req *dto.SaveSchemeRequest) (*model.Scheme, error) {
	scheme := schemeFromRequest(req)
	scheme = engine.ApplyDefaults(scheme)

	if violations := engine.ValidateConfig(scheme); len(violations) > 0 {
		return nil, &engine.ConfigurationError{Violations: violations}
	}

	scheme.ID = id
	if err := s.repo.Update(ctx, &scheme); err != nil {
		return nil, err
	}

	return &scheme, nil
}

func (s *SchemeService) Get(ctx context.Context, id string) (*model.Scheme, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SchemeService) List(ctx context.Context, kind, currency, country string, limit, offset int) ([]model.Scheme, int, error) {
	return s.repo.List(ctx, strings.ToLower(kind), strings.ToUpper(currency), country, limit, offset)
}

func (s *SchemeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CheckAvailability loads a scheme and evaluates its operational status. The
// next open window is looked up only when the scheme is closed.
func (s *SchemeService) CheckAvailability(ctx context.Context, id string, at time.Time) (*dto.AvailabilityResponse, error) {
	scheme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	availability := engine.EvaluateAvailability(*scheme, at)

	resp := &dto.AvailabilityResponse{
		SchemeID:      scheme.ID,
		CheckTime:     at,
		IsOperational: availability.Operational,
		Restrictions:  availability.Restrictions,
	}
	if !availability.Operational {
		resp.NextAvailability = engine.NextAvailability(*scheme, at)
	}

	return resp, nil
}

func (s *SchemeService) QuoteFees(ctx context.Context, id string, req *dto.FeeQuoteRequest) (*dto.FeeQuoteResponse, error) {
	scheme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := engine.CalculateFees(*scheme,
		req.Amount, strings.ToUpper(req.SourceCurrency), strings.ToUpper(req.TargetCurrency))
	if err != nil {
		return nil, err
	}

	currency := scheme.Fees.Currency
	if currency == "" {
		currency = scheme.Currency
	}

	return &dto.FeeQuoteResponse{
		SchemeID:     scheme.ID,
		BaseAmount:   quote.BaseAmount,
		TotalFee:     quote.TotalFee,
		FeeBreakdown: quote.Breakdown,
		FinalAmount:  quote.FinalAmount,
		Currency:     currency,
	}, nil
}

func (s *SchemeService) CheckCompatibility(ctx context.Context, id string, req *dto.CompatibilityRequest, at time.Time) (*dto.CompatibilityResponse, error) {
	scheme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source := strings.ToUpper(req.SourceCurrency)
	target := strings.ToUpper(req.TargetCurrency)

	result := engine.CheckCompatibility(*scheme, source, target, req.Amount, at)

	return &dto.CompatibilityResponse{
		SchemeID:               scheme.ID,
		IsCompatible:           result.Compatible,
		SourceCurrency:         source,
		TargetCurrency:         target,
		Amount:                 req.Amount,
		IncompatibilityReasons: result.Reasons,
	}, nil
}

// schemeFromRequest maps a request body onto a scheme record, normalizing
// currency codes to uppercase and weekday names to lowercase.
func schemeFromRequest(req *dto.SaveSchemeRequest) model.Scheme {
	scheme := model.Scheme{
		Name:            req.Name,
		Kind:            model.SchemeKind(strings.ToLower(req.Kind)),
		Currency:        strings.ToUpper(req.Currency),
		TargetCurrency:  strings.ToUpper(req.TargetCurrency),
		CountryScope:    req.CountryScope,
		HolidayCalendar: req.HolidayCalendar,
		CutOffTime:      req.CutOffTime,
		SettlementTime:  req.SettlementTime,
		Spread:          req.Spread,
	}

	for _, day := range req.AvailableDays {
		scheme.AvailableDays = append(scheme.AvailableDays, strings.ToLower(day))
	}
	if req.OperatingHours != nil {
		scheme.OperatingHours = model.OperatingHours{
			Start:    req.OperatingHours.Start,
			End:      req.OperatingHours.End,
			Timezone: req.OperatingHours.Timezone,
		}
	}
	if req.Fees != nil {
		scheme.Fees = model.FeeStructure{
			FlatFee:       req.Fees.FlatFee,
			PercentageFee: req.Fees.PercentageFee,
			Currency:      strings.ToUpper(req.Fees.Currency),
		}
	}
	if req.Limits != nil {
		scheme.Limits = model.AmountLimits{
			MinAmount: req.Limits.MinAmount,
			MaxAmount: req.Limits.MaxAmount,
			Currency:  strings.ToUpper(req.Limits.Currency),
		}
	}
	if req.SupportsFx != nil {
		scheme.SupportsFx = *req.SupportsFx
	}

	return scheme
}
