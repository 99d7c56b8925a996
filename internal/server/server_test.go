package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/example/currency-wars/internal/game"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dialTestServer(t *testing.T) (*GameServer, *httptest.Server, func() *websocket.Conn) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gs := NewGameServer(nil, logger)
	srv := httptest.NewServer(http.HandlerFunc(gs.HandleWS))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	return gs, srv, dial
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: msgType, Payload: raw}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// readUntil reads frames until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want string) envelope {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		if env.Type == want {
			return env
		}
		if time.Now().After(deadline) {
			t.Fatalf("no %s frame before deadline", want)
		}
	}
}

func TestWebsocketGameFlow(t *testing.T) {
	_, _, dial := dialTestServer(t)

	host := dial()
	send(t, host, "createRoom", map[string]string{"name": "alice"})
	created := readUntil(t, host, game.MsgRoomCreated)

	var createdPayload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(created.Payload, &createdPayload); err != nil {
		t.Fatal(err)
	}
	if len(createdPayload.Code) != 6 {
		t.Fatalf("room code = %q, want 6 chars", createdPayload.Code)
	}

	guest := dial()
	send(t, guest, "joinRoom", map[string]string{"code": createdPayload.Code, "name": "bob"})
	readUntil(t, guest, game.MsgJoinedRoom)
	readUntil(t, host, game.MsgPlayerJoined)

	send(t, host, "startGame", nil)
	readUntil(t, host, game.MsgGameStarted)
	state := readUntil(t, guest, game.MsgGameState)

	var view struct {
		Round             int                       `json:"round"`
		Rates             map[game.Currency]float64 `json:"rates"`
		CurrentPlayerName string                    `json:"currentPlayerName"`
		IsMyTurn          bool                      `json:"isMyTurn"`
	}
	if err := json.Unmarshal(state.Payload, &view); err != nil {
		t.Fatal(err)
	}
	if view.Round != 1 {
		t.Errorf("round = %d, want 1", view.Round)
	}
	if view.CurrentPlayerName != "alice" || view.IsMyTurn {
		t.Errorf("guest view current=%q isMyTurn=%v, want alice/false", view.CurrentPlayerName, view.IsMyTurn)
	}
	// No provider is configured, so the fallback table must appear as-is.
	for c, want := range game.FallbackRates {
		if view.Rates[c] != want {
			t.Errorf("rates[%s] = %g, want fallback %g", c, view.Rates[c], want)
		}
	}

	// Acting out of turn yields a single error frame and nothing else.
	send(t, guest, "endTurn", nil)
	errFrame := readUntil(t, guest, game.MsgError)
	var errPayload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(errFrame.Payload, &errPayload); err != nil {
		t.Fatal(err)
	}
	if errPayload.Message == "" {
		t.Error("error frame has empty message")
	}

	// The real current player can advance.
	send(t, host, "endTurn", nil)
	next := readUntil(t, guest, game.MsgGameState)
	if err := json.Unmarshal(next.Payload, &view); err != nil {
		t.Fatal(err)
	}
	if view.CurrentPlayerName != "bob" || !view.IsMyTurn {
		t.Errorf("after endTurn current=%q isMyTurn=%v, want bob/true", view.CurrentPlayerName, view.IsMyTurn)
	}
}

func TestNotifyUnknownIDIsDropped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gs := NewGameServer(nil, logger)
	// Must not panic or block.
	gs.Notify(game.PlayerID("ghost"), game.MsgError, game.ErrorPayload{Message: "x"})
}

// A peer that stops reading must not hold a send open forever; the
// write deadline turns it into an error on the server side.
func TestSendFailsOnStalledPeer(t *testing.T) {
	old := writeWait
	writeWait = 50 * time.Millisecond
	defer func() { writeWait = old }()

	connCh := make(chan *websocket.Conn, 1)
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- conn
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer peer.Close()
	// The peer never reads another frame.

	c := &client{conn: <-connCh}
	defer c.conn.Close()

	payload := strings.Repeat("x", 1<<20)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := c.send(WSOut{Type: "bulk", Payload: payload}); err != nil {
			return
		}
	}
	t.Fatal("send kept succeeding against a peer that stopped reading")
}
