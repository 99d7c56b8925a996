package game

import "math/rand"

// CardGenerator deals starting and goal cards. The RNG is injected so
// deals are reproducible under test with a seeded source.
type CardGenerator struct {
	rng *rand.Rand
}

func NewCardGenerator(rng *rand.Rand) *CardGenerator {
	return &CardGenerator{rng: rng}
}

// Starting picks a uniformly random currency and an integer amount in
// that currency's starting range.
func (g *CardGenerator) Starting() Card {
	currency := Currencies[g.rng.Intn(len(Currencies))]
	r := startingRanges[currency]
	return Card{Currency: currency, Amount: float64(r.min + g.rng.Intn(r.max-r.min))}
}

// Goal picks uniformly among the four currencies other than the
// starting one, with an amount in that currency's goal range.
func (g *CardGenerator) Goal(starting Currency) Card {
	available := make([]Currency, 0, len(Currencies)-1)
	for _, c := range Currencies {
		if c != starting {
			available = append(available, c)
		}
	}
	currency := available[g.rng.Intn(len(available))]
	r := goalRanges[currency]
	return Card{Currency: currency, Amount: float64(r.min + g.rng.Intn(r.max-r.min))}
}

// Deal produces a starting card and a goal card in a different currency.
func (g *CardGenerator) Deal() (starting, goal Card) {
	starting = g.Starting()
	goal = g.Goal(starting.Currency)
	return starting, goal
}

// newHoldings maps every currency to zero except the starting one.
func newHoldings(starting Card) map[Currency]float64 {
	h := make(map[Currency]float64, len(Currencies))
	for _, c := range Currencies {
		h[c] = 0
	}
	h[starting.Currency] = starting.Amount
	return h
}
