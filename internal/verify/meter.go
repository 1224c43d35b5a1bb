package verify

import (
	"github.com/northroot/northroot/internal/event"
	"github.com/northroot/northroot/internal/quantity"
)

// checkMeterBounds checks every used meter against the cap map by
// matching unit name, falling
// back to a USD conversion when the unit itself is uncapped but a "usd"
// cap exists. modelId/provider come from the referencing execution, for
// token-price lookups.
func checkMeterBounds(used []event.Meter, caps []event.Meter, cc *ConversionContext, modelId, provider string) Result {
	capByUnit := make(map[string]quantity.Quantity, len(caps))
	for _, c := range caps {
		capByUnit[c.Unit] = c.Amount
	}

	hasViolation := false
	hasMissingEvidence := false

	for _, m := range used {
		if cap, ok := capByUnit[m.Unit]; ok {
			switch quantity.Compare(m.Amount, cap) {
			case quantity.WithinBounds:
				continue
			case quantity.ExceedsBounds:
				hasViolation = true
			case quantity.Incomparable:
				hasMissingEvidence = true
			}
			continue
		}
		if usdCap, ok := capByUnit["usd"]; ok {
			converted, convOK := cc.ConvertToUSD(m, modelId, provider)
			if !convOK {
				hasMissingEvidence = true
				continue
			}
			switch quantity.Compare(converted, usdCap) {
			case quantity.WithinBounds:
				continue
			case quantity.ExceedsBounds:
				hasViolation = true
			case quantity.Incomparable:
				hasMissingEvidence = true
			}
			continue
		}
		// No constraint applies to this unit: skip.
	}

	switch {
	case hasViolation:
		return violation("meter usage exceeded a bound")
	case hasMissingEvidence:
		return invalid("meter usage could not be compared against its bound")
	default:
		return ok()
	}
}
