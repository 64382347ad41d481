// Package output provides utilities for formatting and displaying estimate reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/format"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/mathutil"
)

var (
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#28A745")
	colorBorder = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6C757D")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

type line struct {
	label string
	value string
}

type labels struct {
	title      string
	initial    string
	adjusted   string
	total      string
	monthly    string
	annualized string
	period     string
	tiers      string
	earlier    string
}

var (
	spanishLabels = labels{
		title:      "Estimación de inflación",
		initial:    "Monto inicial",
		adjusted:   "Monto ajustado",
		total:      "Inflación total",
		monthly:    "Inflación mensual promedio",
		annualized: "Inflación anualizada",
		period:     "Período",
		tiers:      "Tasas de inflación mensual",
		earlier:    "anteriores",
	}
	englishLabels = labels{
		title:      "Inflation estimate",
		initial:    "Initial amount",
		adjusted:   "Adjusted amount",
		total:      "Total inflation",
		monthly:    "Average monthly inflation",
		annualized: "Annualized inflation",
		period:     "Period",
		tiers:      "Monthly inflation tiers",
		earlier:    "earlier",
	}
)

// labelsFor returns the display labels for a locale's language, matching
// the language of Locale.Months and the report interpretation.
func labelsFor(locale format.Locale) labels {
	if locale.Language() == "es" {
		return spanishLabels
	}
	return englishLabels
}

// Pretty writes a human-readable rather than machine-readable report.
// Labels follow the report's locale.
func Pretty(w io.Writer, report estimate.Report) error {
	text := labelsFor(format.MustLocale(report.Locale))
	lines := []line{
		{text.initial, report.Formatted.InitialAmount},
		{text.adjusted, report.Formatted.AdjustedAmount},
		{text.total, report.Formatted.TotalInflation},
		{text.monthly, report.Formatted.MonthlyRate},
		{text.annualized, report.Formatted.AnnualizedInflation},
		{text.period, report.Formatted.Period},
	}

	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.label); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(text.title))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, l.label)))
		b.WriteString("  ")
		b.WriteString(l.value)
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(report.Interpretation))

	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}

// CSV writes the report as a header row and a value row.
func CSV(w io.Writer, report estimate.Report) error {
	writer := csv.NewWriter(w)
	records := [][]string{
		{
			"start_date", "end_date", "currency",
			"initial_amount", "adjusted_amount",
			"total_inflation_percent", "monthly_rate_percent", "annualized_inflation_percent",
			"period_months", "days",
		},
		{
			report.StartDate, report.EndDate, report.Currency,
			formatFloat(report.Result.InitialAmount), formatFloat(report.Result.AdjustedAmount),
			formatFloat(report.Result.TotalInflationPercent), formatFloat(report.Result.MonthlyRatePercent),
			formatFloat(report.Result.AnnualizedInflationPercent),
			strconv.Itoa(report.Result.PeriodMonths), strconv.Itoa(report.Result.DaysElapsed),
		},
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// JSON writes the full report as indented JSON.
func JSON(w io.Writer, report estimate.Report) error {
	return writeIndentedJSON(w, report)
}

// Write dispatches to the writer for outputFormat.
func Write(w io.Writer, outputFormat string, report estimate.Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CSV(w, report)
	case constants.OutputFormatJSON:
		return JSON(w, report)
	default:
		return Pretty(w, report)
	}
}

// RatesDocument is the machine-readable form of a rate table.
type RatesDocument struct {
	Tiers       []inflation.RateTier `json:"tiers"`
	DefaultRate float64              `json:"defaultRate"`
}

// Rates writes the tier table with one row per tier and a final row for
// the default rate.
func Rates(w io.Writer, table inflation.RateTable, locale format.Locale) error {
	text := labelsFor(locale)

	var b strings.Builder
	b.WriteString(titleStyle.Render(text.tiers))
	b.WriteString("\n")
	for _, tier := range table.Tiers() {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", fmt.Sprintf("%d+", tier.MinYear))))
		b.WriteString("  ")
		b.WriteString(locale.Percent(mathutil.ToPercent(tier.MonthlyRate)))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", text.earlier)))
	b.WriteString("  ")
	b.WriteString(locale.Percent(mathutil.ToPercent(table.Default())))

	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}

// RatesCSV writes one row per tier followed by the default rate with an
// empty min_year.
func RatesCSV(w io.Writer, table inflation.RateTable) error {
	writer := csv.NewWriter(w)
	records := [][]string{{"min_year", "monthly_rate"}}
	for _, tier := range table.Tiers() {
		records = append(records, []string{
			strconv.Itoa(tier.MinYear),
			strconv.FormatFloat(tier.MonthlyRate, 'f', -1, 64),
		})
	}
	records = append(records, []string{"", strconv.FormatFloat(table.Default(), 'f', -1, 64)})
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteRates dispatches the rate table to the writer for outputFormat.
func WriteRates(w io.Writer, outputFormat string, table inflation.RateTable, locale format.Locale) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return RatesCSV(w, table)
	case constants.OutputFormatJSON:
		return writeIndentedJSON(w, RatesDocument{Tiers: table.Tiers(), DefaultRate: table.Default()})
	default:
		return Rates(w, table, locale)
	}
}

// YearEntry pairs a year with its historical narrative.
type YearEntry struct {
	Year        string `json:"year"`
	Description string `json:"description"`
}

// DescribeYears returns the narrative for each year, in order.
func DescribeYears(years []string) []YearEntry {
	entries := make([]YearEntry, 0, len(years))
	for _, year := range years {
		entries = append(entries, YearEntry{Year: year, Description: inflation.Describe(year)})
	}
	return entries
}

// YearInfo writes the historical narrative for a year.
func YearInfo(w io.Writer, year, description string) error {
	body := titleStyle.Render("Año "+year) + "\n" + description
	_, err := fmt.Fprintln(w, boxStyle.Width(60).Render(body))
	return err
}

// WriteYear writes a single narrative. JSON output is an object rather than
// a one-element array.
func WriteYear(w io.Writer, outputFormat string, entry YearEntry) error {
	if outputFormat == constants.OutputFormatJSON {
		return writeIndentedJSON(w, entry)
	}
	return WriteYears(w, outputFormat, []YearEntry{entry})
}

// WriteYears writes a list of narratives in outputFormat.
func WriteYears(w io.Writer, outputFormat string, entries []YearEntry) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return writeIndentedJSON(w, entries)
	case constants.OutputFormatCSV:
		writer := csv.NewWriter(w)
		records := [][]string{{"year", "description"}}
		for _, e := range entries {
			records = append(records, []string{e.Year, e.Description})
		}
		if err := writer.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		return nil
	default:
		for _, e := range entries {
			if err := YearInfo(w, e.Year, e.Description); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatFloat renders a value rounded to cents.
func formatFloat(value float64) string {
	return strconv.FormatFloat(mathutil.Round(value), 'f', 2, 64)
}
