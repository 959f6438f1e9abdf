package service

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance: stays up to this long are free.
const toleranceMinutes = 30

// Occupancy-band multipliers applied to the first billed hour only. Upper
// bounds are inclusive, evaluated on a 0-100 scale.
var (
	multiplierLow      = decimal.NewFromFloat(0.90) // occupancy <= 25
	multiplierNormal   = decimal.NewFromInt(1)      // occupancy <= 50
	multiplierHigh     = decimal.NewFromFloat(1.10) // occupancy <= 75
	multiplierVeryHigh = decimal.NewFromFloat(1.25) // occupancy > 75
)

// PricingService computes parking charges. It is pure: no state, no side
// effects beyond logging.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// CalculatePrice returns the charge for a stay. The first billed hour is
// scaled by the occupancy band in effect at exit time; additional hours are
// always at the sector base price. A duration within the tolerance is free.
func (s *PricingService) CalculatePrice(entryTime, exitTime time.Time, occupancyRate float64, sectorBasePrice decimal.Decimal) decimal.Decimal {
	totalMinutes := int64(exitTime.Sub(entryTime).Minutes())

	if totalMinutes <= toleranceMinutes {
		log.Printf("Stay of %d minutes is within tolerance, no charge", totalMinutes)
		return decimal.Zero
	}

	// Round up: 31 min = 1 hour, 61 min = 2 hours.
	billedHours := (totalMinutes + 59) / 60

	firstHourCharge := sectorBasePrice.Mul(firstHourMultiplier(occupancyRate))

	additionalCharge := decimal.Zero
	if billedHours > 1 {
		additionalCharge = sectorBasePrice.Mul(decimal.NewFromInt(billedHours - 1))
	}

	total := firstHourCharge.Add(additionalCharge)

	log.Printf("Pricing: %d min, occupancy %.1f%%, first hour %s, additional %s, total %s",
		totalMinutes, occupancyRate, firstHourCharge, additionalCharge, total)

	return total
}

func firstHourMultiplier(occupancyRate float64) decimal.Decimal {
	switch {
	case occupancyRate <= 25:
		return multiplierLow
	case occupancyRate <= 50:
		return multiplierNormal
	case occupancyRate <= 75:
		return multiplierHigh
	default:
		return multiplierVeryHigh
	}
}
