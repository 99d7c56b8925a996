package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// RateSource seeds the initial rate table when a game starts. The call
// is expected to be bounded by its own timeout; any error makes the
// engine fall back to FallbackRates.
type RateSource interface {
	SeedRates(ctx context.Context) (map[Currency]float64, error)
}

// Engine owns every room and processes one inbound action at a time per
// room. Rooms are independent; actions on different rooms never
// interact.
type Engine struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	notifier Notifier
	rates    RateSource
	cards    *CardGenerator
	rng      *rand.Rand
	logger   *slog.Logger

	minPlayers int
	maxPlayers int
}

// lockedSource serializes access to an underlying source. The engine
// keeps one generator for all rooms, but actions on different rooms
// run on different goroutines, so draws must synchronize here.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

func newLockedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

// Option configures an Engine.
type Option func(*Engine)

// WithRateSource sets the external seed-rate provider. Without one the
// engine starts every game on the fallback table.
func WithRateSource(rs RateSource) Option {
	return func(e *Engine) { e.rates = rs }
}

// WithRandSeed replaces the randomness used for room codes, cards and
// event draws. Tests pass a fixed seed for reproducible outcomes.
func WithRandSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = newLockedRand(seed)
		e.cards = NewCardGenerator(e.rng)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPlayerLimits overrides the lobby capacity bounds.
func WithPlayerLimits(min, max int) Option {
	return func(e *Engine) {
		e.minPlayers = min
		e.maxPlayers = max
	}
}

// NewEngine creates an engine pushing notifications through n.
func NewEngine(n Notifier, opts ...Option) *Engine {
	e := &Engine{
		rooms:      make(map[string]*Room),
		notifier:   n,
		rng:        newLockedRand(time.Now().UnixNano()),
		logger:     slog.Default(),
		minPlayers: 2,
		maxPlayers: 6,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cards == nil {
		e.cards = NewCardGenerator(e.rng)
	}
	return e
}
