package billing

// PriceTier identifies which of the ten sell prices on a product a line uses.
type PriceTier string

// The Holoo product record carries ten parallel sell prices.
const (
	TierSellPrice   PriceTier = "SellPrice"
	TierSellPrice2  PriceTier = "SellPrice2"
	TierSellPrice3  PriceTier = "SellPrice3"
	TierSellPrice4  PriceTier = "SellPrice4"
	TierSellPrice5  PriceTier = "SellPrice5"
	TierSellPrice6  PriceTier = "SellPrice6"
	TierSellPrice7  PriceTier = "SellPrice7"
	TierSellPrice8  PriceTier = "SellPrice8"
	TierSellPrice9  PriceTier = "SellPrice9"
	TierSellPrice10 PriceTier = "SellPrice10"
)

// TierUSD is the tier that prices in dollars by business convention.
// Every other tier prices in rial.
const TierUSD = TierSellPrice4

// AllTiers lists the tiers in wire order.
var AllTiers = []PriceTier{
	TierSellPrice, TierSellPrice2, TierSellPrice3, TierSellPrice4,
	TierSellPrice5, TierSellPrice6, TierSellPrice7, TierSellPrice8,
	TierSellPrice9, TierSellPrice10,
}

// IsValid reports whether the tier names one of the ten sell prices.
func (t PriceTier) IsValid() bool {
	for _, known := range AllTiers {
		if t == known {
			return true
		}
	}
	return false
}

// IsUSD reports whether amounts on this tier are denominated in dollars.
func (t PriceTier) IsUSD() bool {
	return t == TierUSD
}

// Currency returns the currency the tier prices in.
func (t PriceTier) Currency() Currency {
	if t.IsUSD() {
		return CurrencyUSD
	}
	return CurrencyRial
}
