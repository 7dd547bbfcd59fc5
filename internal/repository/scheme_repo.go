package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

type SchemeRepository struct {
	pool *pgxpool.Pool
}

func NewSchemeRepository(pool *pgxpool.Pool) *SchemeRepository {
	return &SchemeRepository{pool: pool}
}

const schemeColumns = `id, name, kind, currency, COALESCE(target_currency, '') as target_currency,
	country_scope, available_days, hours_start, hours_end, hours_timezone,
	holiday_calendar, COALESCE(cut_off_time, '') as cut_off_time, settlement_time,
	fee_flat, fee_percentage, COALESCE(fee_currency, '') as fee_currency,
	limit_min, limit_max, COALESCE(limit_currency, '') as limit_currency,
	spread, supports_fx, created_at, updated_at`

func (r *SchemeRepository) Insert(ctx context.Context, s *model.Scheme) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schemes (
			id, name, kind, currency, target_currency, country_scope,
			available_days, hours_start, hours_end, hours_timezone,
			holiday_calendar, cut_off_time, settlement_time,
			fee_flat, fee_percentage, fee_currency,
			limit_min, limit_max, limit_currency, spread, supports_fx
		) VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), $6,
			$7, $8, $9, $10,
			COALESCE($11, '{}'::text[]), NULLIF($12, ''), $13,
			$14, $15, NULLIF($16, ''),
			$17, $18, NULLIF($19, ''), $20, $21
		)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Kind, s.Currency, s.TargetCurrency, s.CountryScope,
		s.AvailableDays, s.OperatingHours.Start, s.OperatingHours.End, s.OperatingHours.Timezone,
		s.HolidayCalendar, s.CutOffTime, s.SettlementTime,
		s.Fees.FlatFee, s.Fees.PercentageFee, s.Fees.Currency,
		s.Limits.MinAmount, s.Limits.MaxAmount, s.Limits.Currency, s.Spread, s.SupportsFx).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Update replaces every configurable column of an existing scheme. Returns
// pgx.ErrNoRows when the scheme does not exist.
func (r *SchemeRepository) Update(ctx context.Context, s *model.Scheme) error {
	return r.pool.QueryRow(ctx,
		`UPDATE schemes SET
			name = $2, kind = $3, currency = $4, target_currency = NULLIF($5, ''),
			country_scope = $6, available_days = $7, hours_start = $8, hours_end = $9,
			hours_timezone = $10, holiday_calendar = COALESCE($11, '{}'::text[]), cut_off_time = NULLIF($12, ''),
			settlement_time = $13, fee_flat = $14, fee_percentage = $15,
			fee_currency = NULLIF($16, ''), limit_min = $17, limit_max = $18,
			limit_currency = NULLIF($19, ''), spread = $20, supports_fx = $21,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Kind, s.Currency, s.TargetCurrency, s.CountryScope,
		s.AvailableDays, s.OperatingHours.Start, s.OperatingHours.End, s.OperatingHours.Timezone,
		s.HolidayCalendar, s.CutOffTime, s.SettlementTime,
		s.Fees.FlatFee, s.Fees.PercentageFee, s.Fees.Currency,
		s.Limits.MinAmount, s.Limits.MaxAmount, s.Limits.Currency, s.Spread, s.SupportsFx).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SchemeRepository) FindByID(ctx context.Context, id string) (*model.Scheme, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM schemes WHERE id = $1`, schemeColumns), id)
	return scanScheme(row)
}

// List returns one page of schemes plus the unfiltered-by-pagination total.
// Empty filter values are ignored.
func (r *SchemeRepository) List(ctx context.Context, kind, currency, country string, limit, offset int) ([]model.Scheme, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if kind != "" {
		args = append(args, kind)
		where += fmt.Sprintf(` AND kind = $%d`, len(args))
	}
	if currency != "" {
		args = append(args, currency)
		where += fmt.Sprintf(` AND (currency = $%d OR target_currency = $%d)`, len(args), len(args))
	}
	if country != "" {
		args = append(args, country)
		where += fmt.Sprintf(` AND country_scope = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schemes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schemes: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM schemes%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		schemeColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var schemes []model.Scheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, 0, err
		}
		schemes = append(schemes, *s)
	}

	return schemes, total, rows.Err()
}

// ListAll returns every scheme without pagination, for bulk evaluation.
func (r *SchemeRepository) ListAll(ctx context.Context) ([]model.Scheme, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM schemes ORDER BY name, id`, schemeColumns))
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var schemes []model.Scheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, *s)
	}

	return schemes, rows.Err()
}

func (r *SchemeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schemes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanScheme(row pgx.Row) (*model.Scheme, error) {
	s := &model.Scheme{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Kind, &s.Currency, &s.TargetCurrency,
		&s.CountryScope, &s.AvailableDays, &s.OperatingHours.Start, &s.OperatingHours.End, &s.OperatingHours.Timezone,
		&s.HolidayCalendar, &s.CutOffTime, &s.SettlementTime,
		&s.Fees.FlatFee, &s.Fees.PercentageFee, &s.Fees.Currency,
		&s.Limits.MinAmount, &s.Limits.MaxAmount, &s.Limits.Currency,
		&s.Spread, &s.SupportsFx, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
