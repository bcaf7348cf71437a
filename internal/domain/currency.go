package domain

// Currency is read-only reference data describing a display currency.
// Rate is the multiplier from the reference currency (USD).
type Currency struct {
	Code   string
	Symbol string
	Rate   float64
	Label  string
}

// DefaultCurrency is the unit-rate fallback used when no display currency
// is selected.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$", Rate: 1, Label: "US Dollar"}

// Currencies is the platform's currency reference table. It is not owned
// by any entity and is only ever looked up by code.
var Currencies = []Currency{
	DefaultCurrency,
	{Code: "SAR", Symbol: "SR", Rate: 3.75, Label: "Saudi Riyal"},
	{Code: "AED", Symbol: "DH", Rate: 3.67, Label: "UAE Dirham"},
	{Code: "EGP", Symbol: "E£", Rate: 48.50, Label: "Egypt Pound"},
	{Code: "EUR", Symbol: "€", Rate: 0.92, Label: "Euro"},
}

// CurrencyByCode looks a currency up by its code, falling back to the
// reference currency when the code is unknown or empty.
func CurrencyByCode(code string) Currency {
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return DefaultCurrency
}
