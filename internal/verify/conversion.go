package verify

import (
	"github.com/northroot/northroot/internal/event"
	"github.com/northroot/northroot/internal/quantity"
)

// TokenType distinguishes priced token directions.
type TokenType string

const (
	TokenInput  TokenType = "tokens.input"
	TokenOutput TokenType = "tokens.output"
)

// modelKey identifies a (model, provider, token-type) price-table entry.
type modelKey struct {
	ModelId   string
	Provider  string
	TokenType TokenType
}

// ConversionContext is a priced snapshot letting the verifier reduce
// cross-unit meter usage to USD for comparison against a USD cap. Every
// rate is an explicit quantity.Quantity so conversion never
// introduces floating-point rounding the comparator itself forbids.
type ConversionContext struct {
	SnapshotDigestB64 string

	pricePerToken map[modelKey]quantity.Quantity
	computeRate   map[string]quantity.Quantity // unit name -> USD per unit
	storageRate   map[string]quantity.Quantity
}

func NewConversionContext(snapshotDigestB64 string) *ConversionContext {
	return &ConversionContext{
		SnapshotDigestB64: snapshotDigestB64,
		pricePerToken:     make(map[modelKey]quantity.Quantity),
		computeRate:       make(map[string]quantity.Quantity),
		storageRate:       make(map[string]quantity.Quantity),
	}
}

func (c *ConversionContext) SetTokenPrice(modelId, provider string, tt TokenType, usdPerToken quantity.Quantity) {
	c.pricePerToken[modelKey{modelId, provider, tt}] = usdPerToken
}

func (c *ConversionContext) SetComputeRate(unit string, usdPerUnit quantity.Quantity) {
	c.computeRate[unit] = usdPerUnit
}

func (c *ConversionContext) SetStorageRate(unit string, usdPerUnit quantity.Quantity) {
	c.storageRate[unit] = usdPerUnit
}

// ConvertToUSD attempts to price m into a USD quantity, given the
// execution's model/provider where relevant. It reports ok=false whenever
// no price entry exists, the unit is not a recognized conversion source,
// or the multiplication overflows — callers treat that as missing
// evidence, never as a silent zero.
func (c *ConversionContext) ConvertToUSD(m event.Meter, modelId, provider string) (quantity.Quantity, bool) {
	if c == nil {
		return quantity.Quantity{}, false
	}
	switch m.Unit {
	case string(TokenInput), string(TokenOutput):
		if modelId == "" || provider == "" {
			return quantity.Quantity{}, false
		}
		tt := TokenType(m.Unit)
		price, ok := c.pricePerToken[modelKey{modelId, provider, tt}]
		if !ok {
			return quantity.Quantity{}, false
		}
		return quantity.Multiply(m.Amount, price)

	case "compute.seconds":
		rate, ok := c.computeRate[m.Unit]
		if !ok {
			return quantity.Quantity{}, false
		}
		return quantity.Multiply(m.Amount, rate)

	case "storage.bytes":
		rate, ok := c.storageRate[m.Unit]
		if !ok {
			return quantity.Quantity{}, false
		}
		return quantity.Multiply(m.Amount, rate)

	default:
		return quantity.Quantity{}, false
	}
}
