package game

import (
	"math/rand"
	"testing"
)

func TestCardGenerator_StartingWithinRange(t *testing.T) {
	g := NewCardGenerator(rand.New(rand.NewSource(42)))
	for i := 0; i < 500; i++ {
		card := g.Starting()
		r, ok := startingRanges[card.Currency]
		if !ok {
			t.Fatalf("unknown currency %q", card.Currency)
		}
		if card.Amount < float64(r.min) || card.Amount >= float64(r.max) {
			t.Errorf("%s amount %g outside [%d,%d)", card.Currency, card.Amount, r.min, r.max)
		}
	}
}

func TestCardGenerator_GoalNeverMatchesStarting(t *testing.T) {
	g := NewCardGenerator(rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		starting, goal := g.Deal()
		if starting.Currency == goal.Currency {
			t.Fatalf("goal currency %s equals starting currency", goal.Currency)
		}
		r := goalRanges[goal.Currency]
		if goal.Amount < float64(r.min) || goal.Amount >= float64(r.max) {
			t.Errorf("%s goal amount %g outside [%d,%d)", goal.Currency, goal.Amount, r.min, r.max)
		}
	}
}

func TestCardGenerator_Deterministic(t *testing.T) {
	a := NewCardGenerator(rand.New(rand.NewSource(99)))
	b := NewCardGenerator(rand.New(rand.NewSource(99)))
	for i := 0; i < 20; i++ {
		sa, ga := a.Deal()
		sb, gb := b.Deal()
		if sa != sb || ga != gb {
			t.Fatalf("deal %d diverged: %v/%v vs %v/%v", i, sa, ga, sb, gb)
		}
	}
}

func TestNewHoldings(t *testing.T) {
	h := newHoldings(Card{Currency: EUR, Amount: 800})
	for _, c := range Currencies {
		want := 0.0
		if c == EUR {
			want = 800
		}
		if h[c] != want {
			t.Errorf("holdings[%s] = %g, want %g", c, h[c], want)
		}
	}
	if len(h) != len(Currencies) {
		t.Errorf("holdings has %d entries, want %d", len(h), len(Currencies))
	}
}
