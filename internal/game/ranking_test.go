package game

import "testing"

func TestWinTriggeredByTransaction(t *testing.T) {
	e, rec, room, ids := setupTrade(t, 50)
	p := room.Players[0]
	p.GoalCard = Card{Currency: EUR, Amount: 500}
	p.Holdings = map[Currency]float64{TRY: 0, USD: 1000, EUR: 450, GOLD: 0, GBP: 0}
	room.Game.Round = 3
	rec.reset()

	err := e.BuySell(ids[0], BuySellRequest{
		Type:            "buy",
		TargetCurrency:  EUR,
		TargetAmount:    100,
		PaymentCurrency: USD,
	})
	if err != nil {
		t.Fatalf("BuySell: %v", err)
	}
	if !p.Finished {
		t.Fatal("player not marked finished after reaching goal")
	}
	if p.FinishRound != 3 {
		t.Errorf("finishRound = %d, want 3", p.FinishRound)
	}
	notes := rec.byEvent(MsgPlayerFinished)
	if len(notes) != 2 {
		t.Fatalf("playerFinished notes = %d, want 2", len(notes))
	}
	payload := notes[0].payload.(PlayerFinishedPayload)
	if payload.Rank != 1 {
		t.Errorf("rank = %d, want 1", payload.Rank)
	}
}

func TestTradeDoesNotTriggerWin(t *testing.T) {
	e, _, room, ids := setupTrade(t, 51)
	p := room.Players[0]
	p.GoalCard = Card{Currency: EUR, Amount: 200}
	room.Players[1].GoalCard = Card{Currency: GBP, Amount: 5000}

	err := e.PlayerTrade(ids[0], TradeRequest{
		TargetPlayerID:  ids[1],
		GiveCurrency:    USD,
		GiveAmount:      10,
		ReceiveCurrency: EUR,
		ReceiveAmount:   90, // under the 100 goal-protection cap
	})
	if err != nil {
		t.Fatalf("PlayerTrade: %v", err)
	}
	// Holdings could already satisfy the goal, but only a market
	// transaction evaluates it.
	p.Holdings[EUR] = 300
	if p.Finished {
		t.Error("trade must not trigger the win check")
	}
}

func TestFinalRanking(t *testing.T) {
	rates := copyRates(FallbackRates)
	players := []*Player{
		{Name: "never-rich", Holdings: map[Currency]float64{TRY: 100}},
		{Name: "late", FinishRound: 5},
		{Name: "early", FinishRound: 3},
		{Name: "never-poor", Holdings: map[Currency]float64{TRY: 10}},
		{Name: "never-mid", Holdings: map[Currency]float64{TRY: 50}},
	}

	ranked := FinalRanking(players, rates)

	want := []string{"early", "late", "never-rich", "never-mid", "never-poor"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Name, name)
		}
	}
}

func TestFinalRanking_TiesKeepInsertionOrder(t *testing.T) {
	rates := copyRates(FallbackRates)
	players := []*Player{
		{Name: "a", Holdings: map[Currency]float64{TRY: 100}},
		{Name: "b", Holdings: map[Currency]float64{TRY: 100}},
		{Name: "c", FinishRound: 2},
		{Name: "d", FinishRound: 2},
	}
	ranked := FinalRanking(players, rates)
	want := []string{"c", "d", "a", "b"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Name, name)
		}
	}
}

func TestFinalRanking_DoesNotReorderInput(t *testing.T) {
	rates := copyRates(FallbackRates)
	players := []*Player{
		{Name: "a", Holdings: map[Currency]float64{TRY: 1}},
		{Name: "b", FinishRound: 1},
	}
	FinalRanking(players, rates)
	if players[0].Name != "a" || players[1].Name != "b" {
		t.Error("FinalRanking mutated the input slice order")
	}
}

func TestPortfolioValue(t *testing.T) {
	holdings := map[Currency]float64{TRY: 100, USD: 10, GOLD: 1}
	rates := map[Currency]float64{TRY: 1, USD: 40, EUR: 44, GOLD: 3000, GBP: 50}
	want := 100.0 + 400 + 3000
	if got := PortfolioValue(holdings, rates); got != want {
		t.Errorf("PortfolioValue = %g, want %g", got, want)
	}
}
