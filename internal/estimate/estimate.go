// Package estimate turns text input into a formatted inflation report and
// caches the rendered reports.
package estimate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/inflation-estimator/internal/cache"
	"github.com/iwvelando/inflation-estimator/pkg/datetime"
	"github.com/iwvelando/inflation-estimator/pkg/format"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"go.uber.org/zap"
)

// Request holds the raw fields of an estimate as typed by a user.
type Request struct {
	Amount    string `json:"amount"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Report holds the numeric result together with its display strings.
type Report struct {
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	Locale         string           `json:"locale"`
	Currency       string           `json:"currency"`
	Result         inflation.Result `json:"result"`
	Formatted      Formatted        `json:"formatted"`
	Interpretation string           `json:"interpretation"`
}

// Formatted holds the locale-specific rendering of a Result.
type Formatted struct {
	InitialAmount       string `json:"initialAmount"`
	AdjustedAmount      string `json:"adjustedAmount"`
	TotalInflation      string `json:"totalInflation"`
	MonthlyRate         string `json:"monthlyRate"`
	AnnualizedInflation string `json:"annualizedInflation"`
	Period              string `json:"period"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
}

// Service runs estimates with a fixed rate table and display locale.
type Service struct {
	logger    *zap.Logger
	estimator *inflation.Estimator
	locale    format.Locale
	cache     cache.Cache
	keyPrefix string
}

// NewService constructs a Service. A nil cache disables caching.
func NewService(logger *zap.Logger, estimator *inflation.Estimator, locale format.Locale, c cache.Cache) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if estimator == nil {
		estimator = inflation.NewEstimator(inflation.DefaultRateTable())
	}
	return &Service{
		logger:    logger,
		estimator: estimator,
		locale:    locale,
		cache:     c,
		keyPrefix: tableFingerprint(estimator.Table()) + "|" + locale.String(),
	}
}

// Locale returns the display locale of the service.
func (s *Service) Locale() format.Locale {
	return s.locale
}

// Table returns the rate table of the service.
func (s *Service) Table() inflation.RateTable {
	return s.estimator.Table()
}

// Estimate parses req and returns the report for it.
func (s *Service) Estimate(ctx context.Context, req Request) (Report, error) {
	input, err := inflation.ParseInput(req.Amount, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Debug("rejected estimate request",
			zap.String("op", "estimate.Estimate"),
			zap.Error(err),
		)
		return Report{}, err
	}
	return s.EstimateInput(ctx, input)
}

// EstimateInput runs the estimate for an already parsed input, using the
// cache when one is configured.
func (s *Service) EstimateInput(ctx context.Context, input inflation.Input) (Report, error) {
	key := s.cacheKey(input)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var report Report
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				s.logger.Debug("estimate served from cache",
					zap.String("op", "estimate.EstimateInput"),
					zap.String("key", key),
				)
				return report, nil
			}
			s.logger.Warn("discarding undecodable cache entry",
				zap.String("op", "estimate.EstimateInput"),
				zap.String("key", key),
			)
		}
	}

	result, err := s.estimator.Estimate(input)
	if err != nil {
		s.logger.Debug("rejected estimate input",
			zap.String("op", "estimate.EstimateInput"),
			zap.Error(err),
		)
		return Report{}, err
	}

	report := BuildReport(s.locale, input, result)

	s.logger.Debug("estimate computed",
		zap.String("op", "estimate.EstimateInput"),
		zap.Float64("amount", result.InitialAmount),
		zap.Float64("adjusted", result.AdjustedAmount),
		zap.Float64("monthlyRate", result.MonthlyRate),
		zap.Int("days", result.DaysElapsed),
	)

	if s.cache != nil {
		s.store(ctx, key, report)
	}

	return report, nil
}

func (s *Service) store(ctx context.Context, key string, report Report) {
	encoded, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("failed to encode estimate for cache",
			zap.String("op", "estimate.store"),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
		s.logger.Warn("failed to cache estimate",
			zap.String("op", "estimate.store"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// BuildReport renders result for locale.
func BuildReport(locale format.Locale, input inflation.Input, result inflation.Result) Report {
	formatted := Formatted{
		InitialAmount:       locale.Currency(result.InitialAmount),
		AdjustedAmount:      locale.Currency(result.AdjustedAmount),
		TotalInflation:      locale.Percent(result.TotalInflationPercent),
		MonthlyRate:         locale.Percent(result.MonthlyRatePercent),
		AnnualizedInflation: locale.Percent(result.AnnualizedInflationPercent),
		Period:              locale.Months(result.PeriodMonths),
		StartDate:           locale.Date(input.StartDate),
		EndDate:             locale.Date(input.EndDate),
	}

	return Report{
		StartDate:      input.StartDate.Format(datetime.DateLayout),
		EndDate:        input.EndDate.Format(datetime.DateLayout),
		Locale:         locale.String(),
		Currency:       locale.CurrencyCode(),
		Result:         result,
		Formatted:      formatted,
		Interpretation: interpretation(locale, formatted),
	}
}

func interpretation(locale format.Locale, f Formatted) string {
	if locale.Language() == "es" {
		return fmt.Sprintf("El poder adquisitivo de %s en %s equivale a %s en %s.",
			f.InitialAmount, f.StartDate, f.AdjustedAmount, f.EndDate)
	}
	return fmt.Sprintf("The purchasing power of %s on %s equals %s on %s.",
		f.InitialAmount, f.StartDate, f.AdjustedAmount, f.EndDate)
}

func (s *Service) cacheKey(input inflation.Input) string {
	return strings.Join([]string{
		s.keyPrefix,
		strconv.FormatFloat(input.Amount, 'f', -1, 64),
		input.StartDate.Format(datetime.DateLayout),
		input.EndDate.Format(datetime.DateLayout),
	}, "|")
}

func tableFingerprint(table inflation.RateTable) string {
	var b strings.Builder
	for _, tier := range table.Tiers() {
		fmt.Fprintf(&b, "%d:%g,", tier.MinYear, tier.MonthlyRate)
	}
	fmt.Fprintf(&b, "default:%g", table.Default())
	return b.String()
}
