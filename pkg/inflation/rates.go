package inflation

import (
	"fmt"
	"sort"
)

// RateTier applies MonthlyRate to start years greater than or equal to MinYear.
type RateTier struct {
	MinYear     int     `json:"minYear" yaml:"minYear"`
	MonthlyRate float64 `json:"monthlyRate" yaml:"monthlyRate"`
}

// RateTable is an immutable set of tiers ordered by descending MinYear plus a
// default rate for years older than every tier.
type RateTable struct {
	tiers       []RateTier
	defaultRate float64
}

// DefaultMonthlyRate applies to start years before the oldest default tier.
const DefaultMonthlyRate = 0.02

var defaultTiers = []RateTier{
	{MinYear: 2023, MonthlyRate: 0.08},
	{MinYear: 2020, MonthlyRate: 0.04},
	{MinYear: 2015, MonthlyRate: 0.025},
}

// DefaultRateTable returns the built-in tier table.
func DefaultRateTable() RateTable {
	return RateTable{tiers: append([]RateTier(nil), defaultTiers...), defaultRate: DefaultMonthlyRate}
}

// NewRateTable validates the tiers and returns them as a table sorted by
// descending MinYear.
func NewRateTable(tiers []RateTier, defaultRate float64) (RateTable, error) {
	if err := validateRate(defaultRate); err != nil {
		return RateTable{}, fmt.Errorf("default rate: %w", err)
	}

	sorted := append([]RateTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinYear > sorted[j].MinYear
	})

	for i, tier := range sorted {
		if err := validateRate(tier.MonthlyRate); err != nil {
			return RateTable{}, fmt.Errorf("tier %d: %w", tier.MinYear, err)
		}
		if i > 0 && sorted[i-1].MinYear == tier.MinYear {
			return RateTable{}, fmt.Errorf("duplicate tier for year %d", tier.MinYear)
		}
	}

	return RateTable{tiers: sorted, defaultRate: defaultRate}, nil
}

func validateRate(rate float64) error {
	if rate < 0 || rate >= 1 {
		return fmt.Errorf("monthly rate %v outside [0, 1)", rate)
	}
	return nil
}

// RateFor returns the monthly rate of the first tier whose MinYear is not
// after year, or the default rate.
func (t RateTable) RateFor(year int) float64 {
	for _, tier := range t.tiers {
		if year >= tier.MinYear {
			return tier.MonthlyRate
		}
	}
	return t.defaultRate
}

// Tiers returns a copy of the tiers in lookup order.
func (t RateTable) Tiers() []RateTier {
	return append([]RateTier(nil), t.tiers...)
}

// Default returns the rate used when no tier matches.
func (t RateTable) Default() float64 {
	return t.defaultRate
}
