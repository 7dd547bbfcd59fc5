package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-scheme-engine/internal/engine"
	"github.com/anyulbade/payment-scheme-engine/internal/model"
	"github.com/anyulbade/payment-scheme-engine/internal/repository"
)

func ptr(v float64) *float64 { return &v }

// seedSchemes is a catalog of realistic payment networks covering all three
// scheme kinds. Fields left empty are filled by the kind defaults at seed
// time, the same path a created scheme takes.
var seedSchemes = []model.Scheme{
	{
		Name:            "SEPA Credit Transfer",
		Kind:            model.KindFiat,
		Currency:        "EUR",
		CountryScope:    "EU",
		OperatingHours:  model.OperatingHours{Start: "08:00", End: "18:00", Timezone: "Europe/Brussels"},
		HolidayCalendar: []string{"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-01", "2026-12-25", "2026-12-26"},
		SettlementTime:  "T+1",
		Fees:            model.FeeStructure{FlatFee: ptr(0.35)},
		Limits:          model.AmountLimits{MinAmount: ptr(0.01), MaxAmount: ptr(999999999.99)},
	},
	{
		Name:           "SEPA Instant Credit Transfer",
		Kind:           model.KindFiat,
		Currency:       "EUR",
		CountryScope:   "EU",
		AvailableDays:  model.Weekdays,
		OperatingHours: model.OperatingHours{Start: "00:00", End: "23:59", Timezone: "UTC"},
		SettlementTime: "instant",
		Fees:           model.FeeStructure{FlatFee: ptr(0.20)},
		Limits:         model.AmountLimits{MinAmount: ptr(0.01), MaxAmount: ptr(100000)},
	},
	{
		Name:            "Fedwire Funds Service",
		Kind:            model.KindFiat,
		Currency:        "USD",
		CountryScope:    "US",
		OperatingHours:  model.OperatingHours{Start: "09:00", End: "18:00", Timezone: "America/New_York"},
		HolidayCalendar: []string{"2026-01-01", "2026-07-03", "2026-11-26", "2026-12-25"},
		CutOffTime:      "17:00",
		SettlementTime:  "instant",
		Fees:            model.FeeStructure{FlatFee: ptr(25)},
		Limits:          model.AmountLimits{MinAmount: ptr(1)},
	},
	{
		Name:           "ACH Standard",
		Kind:           model.KindFiat,
		Currency:       "USD",
		CountryScope:   "US",
		OperatingHours: model.OperatingHours{Start: "09:00", End: "17:00", Timezone: "America/New_York"},
		CutOffTime:     "16:00",
		SettlementTime: "T+2",
		Fees:           model.FeeStructure{FlatFee: ptr(0.25), PercentageFee: ptr(0.001)},
		Limits:         model.AmountLimits{MinAmount: ptr(0.01), MaxAmount: ptr(1000000)},
	},
	{
		Name:           "Faster Payments",
		Kind:           model.KindFiat,
		Currency:       "GBP",
		CountryScope:   "UK",
		AvailableDays:  model.Weekdays,
		OperatingHours: model.OperatingHours{Start: "00:00", End: "23:59", Timezone: "Europe/London"},
		SettlementTime: "instant",
		Limits:         model.AmountLimits{MinAmount: ptr(0.01), MaxAmount: ptr(1000000)},
	},
	{
		Name:           "PIX Instant Payment",
		Kind:           model.KindFiat,
		Currency:       "BRL",
		CountryScope:   "BR",
		AvailableDays:  model.Weekdays,
		OperatingHours: model.OperatingHours{Start: "00:00", End: "23:59", Timezone: "America/Sao_Paulo"},
		SettlementTime: "instant",
		Fees:           model.FeeStructure{PercentageFee: ptr(0.0015)},
	},
	{
		Name:     "Bitcoin On-Chain",
		Kind:     model.KindCrypto,
		Currency: "BTC",
		Fees:     model.FeeStructure{PercentageFee: ptr(0.001)},
		Limits:   model.AmountLimits{MinAmount: ptr(0.0001)},
	},
	{
		Name:     "Ethereum Mainnet",
		Kind:     model.KindCrypto,
		Currency: "ETH",
		Fees:     model.FeeStructure{PercentageFee: ptr(0.002)},
	},
	{
		Name:            "EUR/USD Spot Desk",
		Kind:            model.KindFx,
		Currency:        "EUR",
		TargetCurrency:  "USD",
		CountryScope:    "GLOBAL",
		OperatingHours:  model.OperatingHours{Start: "07:00", End: "19:00", Timezone: "Europe/London"},
		HolidayCalendar: []string{"2026-01-01", "2026-12-25"},
		Spread:          ptr(0.0025),
		Fees:            model.FeeStructure{FlatFee: ptr(1)},
		Limits:          model.AmountLimits{MinAmount: ptr(100), MaxAmount: ptr(10000000)},
	},
	{
		Name:           "GBP/EUR Corporate FX",
		Kind:           model.KindFx,
		Currency:       "GBP",
		TargetCurrency: "EUR",
		CountryScope:   "UK",
		Spread:         ptr(0.003),
		Limits:         model.AmountLimits{MinAmount: ptr(1000), MaxAmount: ptr(5000000)},
	},
}

// SeedData loads the scheme catalog into an empty database. Each seed runs
// through the same defaults resolution and validation as a created scheme.
// A non-empty schemes table makes this a no-op so restarts stay idempotent.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM schemes`).Scan(&count); err != nil {
		return fmt.Errorf("count schemes: %w", err)
	}
	if count > 0 {
		log.Info().Int("schemes", count).Msg("schemes already present, skipping seed")
		return nil
	}

	repo := repository.NewSchemeRepository(pool)

	for _, seed := range seedSchemes {
		scheme := engine.ApplyDefaults(seed)
		if violations := engine.ValidateConfig(scheme); len(violations) > 0 {
			return fmt.Errorf("seed scheme '%s' invalid: %v", seed.Name, violations)
		}

		scheme.ID = uuid.NewString()
		if err := repo.Insert(ctx, &scheme); err != nil {
			return fmt.Errorf("insert seed scheme '%s': %w", seed.Name, err)
		}
	}

	log.Info().Int("schemes", len(seedSchemes)).Msg("seed data loaded")
	return nil
}
