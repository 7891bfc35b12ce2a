package valuation

// BaseCurrency is the portfolio's fixed base; all conversion goes through it.
const BaseCurrency = "AED"

// ConversionContext carries the display currency and the multipliers that
// convert into AED. It is passed explicitly to every conversion call; there
// is no process-wide rate state.
type ConversionContext struct {
	DisplayCurrency string  `json:"display_currency"`
	USDToAED        float64 `json:"usd_to_aed"`
	INRToAED        float64 `json:"inr_to_aed"`
}

// multiplierToAED returns the factor that converts one unit of currency into
// AED, or 0 when the currency is unknown.
func (c ConversionContext) multiplierToAED(currency string) float64 {
	switch currency {
	case BaseCurrency:
		return 1
	case "USD":
		return c.USDToAED
	case "INR":
		return c.INRToAED
	default:
		return 0
	}
}

// ToAED converts an amount from the given currency into AED.
// Unknown currencies convert to 0 rather than passing through unconverted.
func (c ConversionContext) ToAED(amount float64, currency string) float64 {
	return amount * c.multiplierToAED(currency)
}

// Convert converts an amount between currencies: source to AED using the
// source multiplier, then AED to target by dividing by the target multiplier.
// Identity when source and target match or the target is AED.
func (c ConversionContext) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	aed := c.ToAED(amount, from)
	if to == BaseCurrency {
		return aed
	}
	m := c.multiplierToAED(to)
	if m == 0 {
		return 0
	}
	return aed / m
}

// ToDisplay converts an amount into the context's display currency.
func (c ConversionContext) ToDisplay(amount float64, from string) float64 {
	to := c.DisplayCurrency
	if to == "" {
		to = BaseCurrency
	}
	return c.Convert(amount, from, to)
}
