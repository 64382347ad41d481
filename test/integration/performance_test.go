package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/inflation-estimator/internal/cache"
	"github.com/iwvelando/inflation-estimator/internal/estimate"
)

// TestPerformance estimates every month start across two decades.
func TestPerformance(t *testing.T) {
	service := newService(t, nil)
	ctx := context.Background()

	start := time.Now()
	count := 0
	for year := 2000; year < 2020; year++ {
		for month := 1; month <= 12; month++ {
			req := estimate.Request{
				Amount:    "1000",
				StartDate: fmt.Sprintf("%04d-%02d-01", year, month),
				EndDate:   "2024-01-01",
			}
			if _, err := service.Estimate(ctx, req); err != nil {
				t.Fatalf("Estimate(%s) error = %v", req.StartDate, err)
			}
			count++
		}
	}
	elapsed := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Estimates: %d", count)
	t.Logf("  Total time: %v", elapsed)

	if elapsed > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", elapsed)
	}
}

// TestDataConsistency validates that concurrent runs sharing a cache produce
// identical results.
func TestDataConsistency(t *testing.T) {
	service := newService(t, cache.NewMemoryCache(time.Minute))
	req := estimate.Request{Amount: "1234.56", StartDate: "2021-07-15", EndDate: "2023-02-28"}

	baseline, err := service.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := service.Estimate(context.Background(), req)
			if err != nil {
				errs <- err
				return
			}
			if report != baseline {
				errs <- fmt.Errorf("report differs from baseline: %+v", report)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
