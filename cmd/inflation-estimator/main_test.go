package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfigPath = filepath.Join("..", "..", "test", "test_config.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestEstimateCommandJSON(t *testing.T) {
	out, err := execute(t, "estimate", "--config", testConfigPath,
		"--amount", "1000", "--start", "2023-01-01", "--end", "2024-01-01",
		"--output-format", "json")
	require.NoError(t, err)

	var report estimate.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.InDelta(t, 2516.388, report.Result.AdjustedAmount, 0.01)
	assert.InDelta(t, 151.64, report.Result.TotalInflationPercent, 0.01)
	assert.InDelta(t, 151.817, report.Result.AnnualizedInflationPercent, 0.01)
	assert.Equal(t, 12, report.Result.PeriodMonths)
	assert.Equal(t, "ARS", report.Currency)
}

func TestEstimateCommandPretty(t *testing.T) {
	out, err := execute(t, "estimate", "--config", testConfigPath,
		"--amount", "1000", "--start", "2023-01-01", "--end", "2024-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "$ 2.516,39")
	assert.Contains(t, out, "12 meses")
	assert.Contains(t, out, "El poder adquisitivo de $ 1.000,00")
	assert.Contains(t, out, "Monto ajustado")
	assert.NotContains(t, out, "Adjusted amount")
}

func TestEstimateCommandLocaleOverride(t *testing.T) {
	out, err := execute(t, "estimate", "--config", testConfigPath, "--locale", "en-US",
		"--amount", "1000", "--start", "2023-01-01", "--end", "2024-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "$2,516.39")
	assert.Contains(t, out, "The purchasing power of $1,000.00 on January 1, 2023")
	assert.Contains(t, out, "Adjusted amount")
}

func TestEstimateCommandCSV(t *testing.T) {
	out, err := execute(t, "estimate", "--config", testConfigPath, "--output-format", "csv",
		"--amount", "500", "--start", "2010-06-01", "--end", "2010-06-02")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "start_date,end_date"))
	assert.Contains(t, lines[1], "500.33")
}

func TestEstimateCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		kind    inflation.Kind
		message string
	}{
		{
			name:    "missing amount",
			args:    []string{"--start", "2023-01-01", "--end", "2024-01-01"},
			kind:    inflation.MissingField,
			message: "Por favor, completá todos los campos",
		},
		{
			name:    "zero amount",
			args:    []string{"--amount", "0", "--start", "2023-01-01", "--end", "2024-01-01"},
			kind:    inflation.NonPositiveAmount,
			message: "El monto debe ser mayor a cero",
		},
		{
			name:    "reversed dates",
			args:    []string{"--amount", "10", "--start", "2024-01-01", "--end", "2023-01-01"},
			kind:    inflation.InvalidDateRange,
			message: "La fecha final debe ser posterior a la inicial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"estimate", "--config", testConfigPath}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)

			var verr *inflation.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestRootRejectsInvalidOverrides(t *testing.T) {
	_, err := execute(t, "rates", "--config", testConfigPath, "--output-format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "rates", "--config", testConfigPath, "--locale", "xx-YY")
	assert.Error(t, err)
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	out, err := execute(t, "rates", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--output-format", "json")
	require.NoError(t, err)

	var doc output.RatesDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, inflation.DefaultRateTable().Tiers(), doc.Tiers)
	assert.Equal(t, inflation.DefaultMonthlyRate, doc.DefaultRate)
}

func TestCustomRatesConfig(t *testing.T) {
	path := writeConfig(t, `rates:
  defaultRate: 0.005
  tiers:
    - minYear: 2000
      monthlyRate: 0.01
`)

	out, err := execute(t, "rates", "--config", path, "--output-format", "json")
	require.NoError(t, err)

	var doc output.RatesDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []inflation.RateTier{{MinYear: 2000, MonthlyRate: 0.01}}, doc.Tiers)
	assert.Equal(t, 0.005, doc.DefaultRate)

	out, err = execute(t, "estimate", "--config", path, "--output-format", "json",
		"--amount", "100", "--start", "1999-01-01", "--end", "2000-01-01")
	require.NoError(t, err)

	var report estimate.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0.005, report.Result.MonthlyRate)
}

func TestInvalidRatesConfig(t *testing.T) {
	path := writeConfig(t, `rates:
  tiers:
    - minYear: 2000
      monthlyRate: 1.5
`)

	_, err := execute(t, "rates", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRatesCommandPretty(t *testing.T) {
	out, err := execute(t, "rates", "--config", testConfigPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Tasas de inflación mensual")
	assert.Contains(t, out, "2023+")
	assert.Contains(t, out, "8,00%")
	assert.Contains(t, out, "anteriores")

	out, err = execute(t, "rates", "--config", testConfigPath, "--output-format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "min_year,monthly_rate\n2023,0.08\n2020,0.04\n2015,0.025\n,0.02\n", out)
}

func TestDescribeCommand(t *testing.T) {
	out, err := execute(t, "describe", "1989", "--config", testConfigPath, "--output-format", "json")
	require.NoError(t, err)

	var entry output.YearEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "1989", entry.Year)
	assert.Contains(t, entry.Description, "hiperinflación")

	out, err = execute(t, "describe", "--config", testConfigPath, "--output-format", "json")
	require.NoError(t, err)

	var entries []output.YearEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, len(inflation.DescribedYears()))

	out, err = execute(t, "describe", "1959", "--config", testConfigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Año 1959")

	out, err = execute(t, "describe", "1975", "--config", testConfigPath, "--output-format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "year,description\n1975,"))

	_, err = execute(t, "describe", "1989", "1990", "--config", testConfigPath)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--config", testConfigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (3 tiers, 0 warnings)")

	path := writeConfig(t, `output:
  locale: fr-FR
`)
	out, err = execute(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")

	_, err = execute(t, "validate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "inflation-estimator dev\n", out)
}
