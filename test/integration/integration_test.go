package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/inflation-estimator/internal/cache"
	"github.com/iwvelando/inflation-estimator/internal/config"
	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/internal/server"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/output"
	"go.uber.org/zap"
)

// newService loads the shared test configuration and builds the service
// exactly as the CLI does.
func newService(t *testing.T, store cache.Cache) *estimate.Service {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	table, err := conf.RateTable()
	if err != nil {
		t.Fatalf("RateTable() error = %v", err)
	}

	return estimate.NewService(zap.NewNop(), inflation.NewEstimator(table), conf.Locale(), store)
}

// TestBaselineEstimates checks known results for each rate tier.
func TestBaselineEstimates(t *testing.T) {
	service := newService(t, nil)

	baselineChecks := []struct {
		name        string
		req         estimate.Request
		rate        float64
		expectedVal float64
		months      int
	}{
		{"recent tier", estimate.Request{Amount: "1000", StartDate: "2023-01-01", EndDate: "2024-01-01"}, 0.08, 2516.388, 12},
		{"2020 tier", estimate.Request{Amount: "1000", StartDate: "2020-01-01", EndDate: "2021-01-01"}, 0.04, 1602.518, 12},
		{"2015 tier", estimate.Request{Amount: "1000", StartDate: "2015-01-01", EndDate: "2016-01-01"}, 0.025, 1344.583, 12},
		{"default rate", estimate.Request{Amount: "500", StartDate: "2010-06-01", EndDate: "2010-06-02"}, 0.02, 500.3254, 0},
	}

	for _, check := range baselineChecks {
		t.Run(check.name, func(t *testing.T) {
			report, err := service.Estimate(context.Background(), check.req)
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			if report.Result.MonthlyRate != check.rate {
				t.Errorf("MonthlyRate = %v, expected %v", report.Result.MonthlyRate, check.rate)
			}
			if math.Abs(report.Result.AdjustedAmount-check.expectedVal) > 0.1 {
				t.Errorf("AdjustedAmount = %.4f, expected %.4f", report.Result.AdjustedAmount, check.expectedVal)
			}
			if report.Result.PeriodMonths != check.months {
				t.Errorf("PeriodMonths = %d, expected %d", report.Result.PeriodMonths, check.months)
			}
		})
	}
}

func TestOutputFormats(t *testing.T) {
	service := newService(t, nil)

	report, err := service.Estimate(context.Background(), estimate.Request{
		Amount: "1000", StartDate: "2023-01-01", EndDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	var csvBuf bytes.Buffer
	if err := output.CSV(&csvBuf, report); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	records, err := csv.NewReader(&csvBuf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 2 || len(records[0]) != len(records[1]) {
		t.Fatalf("expected header and one row of equal width, got %v", records)
	}
	if records[1][4] != "2516.39" {
		t.Errorf("adjusted_amount column = %q", records[1][4])
	}

	var jsonBuf bytes.Buffer
	if err := output.JSON(&jsonBuf, report); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	var decoded estimate.Report
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if decoded != report {
		t.Errorf("JSON output does not round trip")
	}

	var prettyBuf bytes.Buffer
	if err := output.Pretty(&prettyBuf, report); err != nil {
		t.Fatalf("Pretty() error = %v", err)
	}
	for _, fragment := range []string{"$ 1.000,00", "$ 2.516,39", "151,64%", "12 meses"} {
		if !strings.Contains(prettyBuf.String(), fragment) {
			t.Errorf("pretty output missing %q", fragment)
		}
	}
}

// TestEndToEndHTTP drives the real handler through a listening test server.
func TestEndToEndHTTP(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute)
	service := newService(t, store)

	limiter := server.NewRateLimiter(100, time.Minute)
	defer limiter.Stop()

	ts := httptest.NewServer(server.NewHandler(zap.NewNop(), service, server.Options{
		Version: "integration",
		Limiter: limiter,
	}))
	defer ts.Close()

	body := `{"amount":"1000","startDate":"2023-01-01","endDate":"2024-01-01"}`
	var first, second estimate.Report
	for i, dst := range []*estimate.Report{&first, &second} {
		resp, err := http.Post(ts.URL+"/api/estimate", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			t.Fatalf("request %d: status %d", i, resp.StatusCode)
		}
		if resp.Header.Get(server.RequestIDHeader) == "" {
			t.Errorf("request %d: missing request id", i)
		}
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("request %d: decode error %v", i, err)
		}
		resp.Body.Close()
	}

	if first != second {
		t.Errorf("cached response differs from computed one")
	}
	if store.Len() != 1 {
		t.Errorf("expected one cached report, got %d", store.Len())
	}

	resp, err := http.Post(ts.URL+"/api/estimate", "application/json",
		strings.NewReader(`{"amount":"1000","startDate":"2024-01-01","endDate":"2023-01-01"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed dates, got %d", resp.StatusCode)
	}

	var errBody map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error %v", err)
	}
	if errBody["kind"] != inflation.InvalidDateRange.String() {
		t.Errorf("kind = %q", errBody["kind"])
	}
}

func TestConfigurationVariations(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  bool
		wantRate float64
	}{
		{
			name:     "no rates section uses defaults",
			yaml:     "output:\n  locale: en-US\n",
			wantRate: 0.08,
		},
		{
			name:     "single tier",
			yaml:     "rates:\n  defaultRate: 0.01\n  tiers:\n    - minYear: 2023\n      monthlyRate: 0.03\n",
			wantRate: 0.03,
		},
		{
			name:    "duplicate tiers",
			yaml:    "rates:\n  tiers:\n    - minYear: 2023\n      monthlyRate: 0.03\n    - minYear: 2023\n      monthlyRate: 0.04\n",
			wantErr: true,
		},
		{
			name:    "negative default",
			yaml:    "rates:\n  defaultRate: -0.01\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}

			err = conf.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			table, err := conf.RateTable()
			if err != nil {
				t.Fatalf("RateTable() error = %v", err)
			}
			if got := table.RateFor(2023); got != tt.wantRate {
				t.Errorf("RateFor(2023) = %v, expected %v", got, tt.wantRate)
			}
		})
	}
}
