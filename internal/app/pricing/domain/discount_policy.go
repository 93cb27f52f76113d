package domain

import (
	"fmt"
	"math/big"
)

// Frequency is how often a cleaning recurs.
type Frequency string

const (
	FrequencyOneTime  Frequency = "one_time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

var frequencyRates = map[Frequency]*big.Rat{
	FrequencyWeekly:   big.NewRat(15, 1),
	FrequencyBiweekly: big.NewRat(10, 1),
	FrequencyMonthly:  big.NewRat(5, 1),
}

// FrequencyRate returns the discount percentage for f; unknown or absent frequencies get 0.
func FrequencyRate(f Frequency) *big.Rat {
	if rate, ok := frequencyRates[f]; ok {
		return new(big.Rat).Set(rate)
	}
	return new(big.Rat)
}

// FrequencyDiscount is the frequency discount on base, rounded to cents.
func FrequencyDiscount(base *Money, f Frequency) *Money {
	return base.Percent(FrequencyRate(f)).Round2()
}

// BulkPolicy selects one of the two quantity-discount rules.
type BulkPolicy string

const (
	// BulkPolicyFlat takes 33.33% off whenever any variable option has quantity above 1.
	BulkPolicyFlat BulkPolicy = "flat"
	// BulkPolicyTiered takes 10% off at 8+ total units and 5% at 4+.
	BulkPolicyTiered BulkPolicy = "tiered"
)

// ParseBulkPolicy maps a configuration string to a BulkPolicy.
func ParseBulkPolicy(s string) (BulkPolicy, error) {
	switch BulkPolicy(s) {
	case BulkPolicyFlat, BulkPolicyTiered:
		return BulkPolicy(s), nil
	case "":
		return BulkPolicyFlat, nil
	default:
		return "", fmt.Errorf("unknown bulk policy %q", s)
	}
}

var flatBulkRate = big.NewRat(3333, 100)

type bulkTier struct {
	minQuantity int64
	rate        *big.Rat
}

// Ordered from the highest threshold down.
var bulkTiers = []bulkTier{
	{minQuantity: 8, rate: big.NewRat(10, 1)},
	{minQuantity: 4, rate: big.NewRat(5, 1)},
}

// BulkRate returns the bulk discount percentage for the priced lines.
func (p BulkPolicy) BulkRate(lines *LineItems) *big.Rat {
	switch p {
	case BulkPolicyTiered:
		for _, tier := range bulkTiers {
			if lines.TotalQuantity >= tier.minQuantity {
				return new(big.Rat).Set(tier.rate)
			}
		}
		return new(big.Rat)
	default:
		if lines.HasMultipleQuantity {
			return new(big.Rat).Set(flatBulkRate)
		}
		return new(big.Rat)
	}
}

// BulkDiscount is the bulk discount on the base amount, rounded to cents.
func (p BulkPolicy) BulkDiscount(lines *LineItems) *Money {
	return lines.BaseAmount.Percent(p.BulkRate(lines)).Round2()
}
