package game

// Event is an immutable macro-event template. Drawing one at a round
// boundary perturbs each affected currency by up to RiskFactor percent
// in either direction.
type Event struct {
	Name               string     `json:"name"`
	AffectedCurrencies []Currency `json:"affectedCurrencies"`
	RiskFactor         float64    `json:"riskFactor"`
}

// EventCatalog is the full deck. It is static and never mutated at
// runtime; the domestic currency is never an affected target.
var EventCatalog = []Event{
	{Name: "US Imposes New Sanctions", AffectedCurrencies: []Currency{USD, EUR}, RiskFactor: 15},
	{Name: "Natural Gas Reserve Discovered", AffectedCurrencies: []Currency{USD, EUR}, RiskFactor: 12},
	{Name: "ECB Raises Interest Rates", AffectedCurrencies: []Currency{EUR, GBP}, RiskFactor: 18},
	{Name: "Global Gold Demand Surges", AffectedCurrencies: []Currency{GOLD, USD}, RiskFactor: 20},
	{Name: "UK Economic Crisis", AffectedCurrencies: []Currency{GBP, EUR}, RiskFactor: 25},
	{Name: "US Inflation Above Expectations", AffectedCurrencies: []Currency{USD, GOLD}, RiskFactor: 15},
	{Name: "Tourism Revenue Hits a Record", AffectedCurrencies: []Currency{USD, EUR}, RiskFactor: 10},
	{Name: "Oil Prices Fall", AffectedCurrencies: []Currency{USD, EUR, GOLD}, RiskFactor: 12},
	{Name: "EU Announces Expansion Plan", AffectedCurrencies: []Currency{EUR, GBP}, RiskFactor: 14},
	{Name: "Gold Mine Disaster", AffectedCurrencies: []Currency{GOLD, USD}, RiskFactor: 22},
	{Name: "UK Updates Its Brexit Deal", AffectedCurrencies: []Currency{GBP, EUR}, RiskFactor: 16},
	{Name: "Export Volume Hits a Record", AffectedCurrencies: []Currency{USD, EUR}, RiskFactor: 11},
	{Name: "US Treasury Yields Rise", AffectedCurrencies: []Currency{USD, GOLD}, RiskFactor: 13},
	{Name: "Global Pandemic Fears", AffectedCurrencies: []Currency{GOLD, USD, EUR}, RiskFactor: 30},
	{Name: "Fed Cuts Interest Rates", AffectedCurrencies: []Currency{USD, GOLD}, RiskFactor: 17},
	{Name: "China Reports Strong Growth", AffectedCurrencies: []Currency{GOLD, USD}, RiskFactor: 14},
	{Name: "European Energy Crisis", AffectedCurrencies: []Currency{EUR, GBP}, RiskFactor: 20},
	{Name: "Global Trade War Escalates", AffectedCurrencies: []Currency{USD, EUR, GOLD}, RiskFactor: 25},
	{Name: "Central Bank Rate Hike", AffectedCurrencies: []Currency{USD, EUR}, RiskFactor: 19},
	{Name: "Gold Production Declines", AffectedCurrencies: []Currency{GOLD}, RiskFactor: 15},
}
