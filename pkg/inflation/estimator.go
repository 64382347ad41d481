// Package inflation projects how a monetary amount grows under a flat
// monthly inflation rate between two calendar dates.
package inflation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/datetime"
	"github.com/iwvelando/inflation-estimator/pkg/mathutil"
)

// Input holds the values for a single estimate.
type Input struct {
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
}

// Result holds the projected amount and derived statistics.
type Result struct {
	InitialAmount              float64 `json:"initialAmount"`
	AdjustedAmount             float64 `json:"adjustedAmount"`
	TotalInflationPercent      float64 `json:"totalInflationPercent"`
	MonthlyRatePercent         float64 `json:"monthlyRatePercent"`
	AnnualizedInflationPercent float64 `json:"annualizedInflationPercent"`
	PeriodMonths               int     `json:"periodMonths"`

	DaysElapsed   int     `json:"daysElapsed"`
	MonthsElapsed float64 `json:"monthsElapsed"`
	MonthlyRate   float64 `json:"monthlyRate"`
}

// Estimator runs estimates against a fixed rate table.
type Estimator struct {
	table RateTable
}

// NewEstimator returns an Estimator bound to table.
func NewEstimator(table RateTable) *Estimator {
	return &Estimator{table: table}
}

// Table returns the rate table the estimator uses.
func (e *Estimator) Table() RateTable {
	return e.table
}

// Estimate runs input against the default rate table.
func Estimate(input Input) (Result, error) {
	return NewEstimator(DefaultRateTable()).Estimate(input)
}

// Estimate validates input and compounds the amount monthly from the start
// date to the end date. Validation stops at the first failing check. Inputs
// whose projection overflows float64 report OutOfRange.
func (e *Estimator) Estimate(input Input) (Result, error) {
	switch {
	case math.IsNaN(input.Amount):
		return Result{}, &ValidationError{Kind: MissingField, Field: FieldAmount}
	case input.StartDate.IsZero():
		return Result{}, &ValidationError{Kind: MissingField, Field: FieldStartDate}
	case input.EndDate.IsZero():
		return Result{}, &ValidationError{Kind: MissingField, Field: FieldEndDate}
	}

	if input.Amount <= 0 {
		return Result{}, &ValidationError{Kind: NonPositiveAmount, Field: FieldAmount}
	}
	if math.IsInf(input.Amount, 1) {
		return Result{}, &ValidationError{Kind: OutOfRange, Field: FieldAmount}
	}

	days := datetime.DaysBetween(input.StartDate, input.EndDate)
	if days <= 0 {
		return Result{}, &ValidationError{Kind: InvalidDateRange, Field: FieldEndDate}
	}

	months := float64(days) / constants.AverageDaysPerMonth
	rate := e.table.RateFor(input.StartDate.Year())
	adjusted := mathutil.Compound(input.Amount, rate, months)
	total := mathutil.PercentChange(input.Amount, adjusted)
	if !isFinite(adjusted) || !isFinite(total) {
		return Result{}, &ValidationError{Kind: OutOfRange, Field: FieldAmount}
	}

	return Result{
		InitialAmount:              input.Amount,
		AdjustedAmount:             adjusted,
		TotalInflationPercent:      total,
		MonthlyRatePercent:         mathutil.ToPercent(rate),
		AnnualizedInflationPercent: mathutil.ToPercent(math.Pow(1+rate, constants.MonthsPerYear) - 1),
		PeriodMonths:               mathutil.RoundHalfUp(months),
		DaysElapsed:                days,
		MonthsElapsed:              months,
		MonthlyRate:                rate,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseInput converts text fields into an Input. Blank fields report
// MissingField; unparseable ones report MalformedField. Amounts beyond the
// float64 range fail to parse and are malformed too.
func ParseInput(amount, startDate, endDate string) (Input, error) {
	amount = strings.TrimSpace(amount)
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	switch {
	case amount == "":
		return Input{}, &ValidationError{Kind: MissingField, Field: FieldAmount}
	case startDate == "":
		return Input{}, &ValidationError{Kind: MissingField, Field: FieldStartDate}
	case endDate == "":
		return Input{}, &ValidationError{Kind: MissingField, Field: FieldEndDate}
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Input{}, &ValidationError{Kind: MalformedField, Field: FieldAmount, Err: err}
	}

	start, err := datetime.ParseDate(startDate)
	if err != nil {
		return Input{}, &ValidationError{Kind: MalformedField, Field: FieldStartDate, Err: err}
	}

	end, err := datetime.ParseDate(endDate)
	if err != nil {
		return Input{}, &ValidationError{Kind: MalformedField, Field: FieldEndDate, Err: err}
	}

	return Input{Amount: value, StartDate: start, EndDate: end}, nil
}
