package game

// Currency is one of the five tradable assets. TRY is the domestic
// currency all rates are quoted against; its rate is always 1.
type Currency string

const (
	TRY  Currency = "TRY"
	USD  Currency = "USD"
	EUR  Currency = "EUR"
	GOLD Currency = "GOLD"
	GBP  Currency = "GBP"
)

// DomesticCurrency is the base of the rate table and never floats.
const DomesticCurrency = TRY

// Currencies lists every tradable currency in a fixed order. Rate
// commits and projections iterate this slice so output is stable.
var Currencies = []Currency{TRY, USD, EUR, GOLD, GBP}

// FallbackRates is used verbatim whenever the external provider is
// unreachable at game start.
var FallbackRates = map[Currency]float64{
	TRY:  1,
	USD:  38.50,
	EUR:  41.20,
	GOLD: 3200,
	GBP:  48.80,
}

type amountRange struct {
	min, max int
}

// Card amount ranges differ per currency to reflect typical unit
// magnitudes (a few gold bars vs tens of thousands of lira).
var startingRanges = map[Currency]amountRange{
	TRY:  {10000, 60000},
	USD:  {500, 2000},
	EUR:  {400, 1600},
	GOLD: {5, 20},
	GBP:  {300, 1300},
}

var goalRanges = map[Currency]amountRange{
	TRY:  {100000, 400000},
	USD:  {3000, 9000},
	EUR:  {2500, 7500},
	GOLD: {40, 120},
	GBP:  {2000, 6000},
}

// Card is a starting holding or a goal target.
type Card struct {
	Currency Currency `json:"currency"`
	Amount   float64  `json:"amount"`
}

// PortfolioValue converts holdings into domestic-currency terms at the
// given rate table.
func PortfolioValue(holdings map[Currency]float64, rates map[Currency]float64) float64 {
	var sum float64
	for _, c := range Currencies {
		sum += holdings[c] * rates[c]
	}
	return sum
}

func copyRates(rates map[Currency]float64) map[Currency]float64 {
	out := make(map[Currency]float64, len(rates))
	for c, r := range rates {
		out[c] = r
	}
	return out
}
