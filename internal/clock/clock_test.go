package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
)

func TestFixed(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(start)

	assert.Equal(t, "2024-01-15", clock.Today(clk))

	clk.Add(2 * time.Hour)
	assert.Equal(t, "2024-01-16", clock.Today(clk))

	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}

func TestFixed_ConcurrentUse(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			clk.Add(time.Minute)
		}()

		go func() {
			defer wg.Done()
			_ = clk.Now()
		}()
	}

	wg.Wait()

	assert.Equal(t, time.Date(2024, 1, 1, 0, 8, 0, 0, time.UTC), clk.Now())
}
