package fare

// =============================================================================
// FREQUENT-USE DISCOUNT - Standard class only
// =============================================================================

// frequentUseFare applies the tiered monthly discount. ridesThisMonth is
// the count BEFORE the current ride is added, so the current ride's
// 1-based number within the month is ridesThisMonth+1. Under the reference
// tiers: rides 1-29 full fare, 30-59 at 80%, 60-80 at 75%, 81+ full again.
func (t *Tariff) frequentUseFare(base Money, ridesThisMonth int) Money {
	ride := ridesThisMonth + 1
	for _, tier := range t.DiscountTiers {
		if ride >= tier.FromRide && ride <= tier.ToRide {
			return base.Mul(tier.Rate)
		}
	}
	return base
}
