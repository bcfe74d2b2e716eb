package payment

import "courtdesk/internal/domain/money"

// NormalizeBreakdown converts allocation legs into the exact list of payment
// rows to record for an authoritative charged total. Legs are consumed in a
// fixed priority order (card-like, then wallet-like, then cash), each capped
// at the remaining uncovered total; a rounding residual is absorbed by the
// first leg. The result always satisfies sum(legs) == total, no matter how
// the tendered components were rounded individually.
func NormalizeBreakdown(legs []Leg, total money.Money) []Leg {
	remaining := total
	out := make([]Leg, 0, len(legs))

	apply := func(leg Leg) {
		if !leg.Amount.IsPositive() || !remaining.IsPositive() {
			return
		}
		applied := money.Min(leg.Amount, remaining)
		out = append(out, Leg{Kind: leg.Kind, Amount: applied})
		remaining = remaining.Sub(applied)
	}

	for _, leg := range legs {
		if leg.Kind.isCardLike() {
			apply(leg)
		}
	}
	for _, leg := range legs {
		if leg.Kind.isWalletLike() {
			apply(leg)
		}
	}
	for _, leg := range legs {
		if leg.Kind == KindCash {
			apply(leg)
		}
	}
	// Kinds outside the priority order (other) cover whatever is left.
	for _, leg := range legs {
		if !leg.Kind.isCardLike() && !leg.Kind.isWalletLike() && leg.Kind != KindCash {
			apply(leg)
		}
	}

	if remaining.IsPositive() {
		if len(out) > 0 {
			out[0].Amount = out[0].Amount.Add(remaining)
		} else {
			out = append(out, Leg{Kind: KindOther, Amount: total})
		}
	}
	return out
}

// BreakdownTotal sums the legs of a breakdown; exported for the conservation
// checks in callers and tests.
func BreakdownTotal(legs []Leg) money.Money {
	sum := money.Zero()
	for _, leg := range legs {
		sum = sum.Add(leg.Amount)
	}
	return sum
}
