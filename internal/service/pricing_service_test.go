package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var pricingBase = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

func price(t *testing.T, minutes int, occupancy float64, basePrice string) decimal.Decimal {
	t.Helper()
	svc := NewPricingService()
	base, err := decimal.NewFromString(basePrice)
	assert.NoError(t, err)
	return svc.CalculatePrice(pricingBase, pricingBase.Add(time.Duration(minutes)*time.Minute), occupancy, base)
}

func TestCalculatePriceTolerance(t *testing.T) {
	for _, minutes := range []int{0, 1, 15, 29, 30} {
		for _, occupancy := range []float64{0, 25, 60, 100} {
			got := price(t, minutes, occupancy, "40.50")
			assert.True(t, got.IsZero(), "%d min at %.0f%% should be free, got %s", minutes, occupancy, got)
		}
	}
}

func TestCalculatePriceRoundsHoursUp(t *testing.T) {
	// Base 1.00 at 50% occupancy keeps the multiplier at 1, so the total
	// equals the billed hours.
	cases := map[int]int64{
		31:  1,
		60:  1,
		61:  2,
		125: 3,
	}
	for minutes, hours := range cases {
		got := price(t, minutes, 50, "1.00")
		assert.True(t, got.Equal(decimal.NewFromInt(hours)), "%d minutes: got %s", minutes, got)
	}
}

func TestCalculatePriceOccupancyTiers(t *testing.T) {
	// 31 minutes = exactly one billed hour, so the total is base rate times
	// the tier multiplier. Upper bounds are inclusive.
	cases := []struct {
		occupancy float64
		want      string
	}{
		{10, "3.69"},  // 4.10 * 0.90
		{25, "3.69"},  // boundary of the low band
		{30, "4.10"},  // 4.10 * 1.00
		{50, "4.10"},  // boundary
		{60, "4.51"},  // 4.10 * 1.10
		{75, "4.51"},  // boundary
		{80, "5.125"}, // 4.10 * 1.25
		{100, "5.125"},
	}
	for _, tc := range cases {
		got := price(t, 31, tc.occupancy, "4.10")
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"occupancy %.0f%%: want %s, got %s", tc.occupancy, tc.want, got)
	}
}

func TestCalculatePriceLowOccupancyLongStay(t *testing.T) {
	// 125 min -> 3 billed hours; first hour 40.50*0.90=36.45, plus 2*40.50.
	got := price(t, 125, 20, "40.50")
	assert.True(t, got.Equal(decimal.RequireFromString("117.45")), "got %s", got)
}

func TestCalculatePriceHighOccupancyLongStay(t *testing.T) {
	// 630 min -> 11 billed hours; first hour 4.10*1.25=5.125, plus 10*4.10.
	got := price(t, 630, 85, "4.10")
	assert.True(t, got.Equal(decimal.RequireFromString("46.125")), "got %s", got)
}

func TestCalculatePriceAdditionalHoursNotMultiplied(t *testing.T) {
	// Two hours at 100% occupancy: only the first carries the 1.25 factor.
	got := price(t, 90, 100, "10.00")
	assert.True(t, got.Equal(decimal.RequireFromString("22.50")), "got %s", got)
}
