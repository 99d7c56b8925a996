package game

import "errors"

// Player-facing rule violations. Each maps to a single error
// notification on the originating connection; none mutates state.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrRoomFull            = errors.New("room is full (max 6 players)")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrNotEnoughPlayers    = errors.New("at least 2 players required")
	ErrNotYourTurn         = errors.New("it is not your turn")
	ErrAlreadyTransacted   = errors.New("you already made a transaction this round")
	ErrAlreadyTraded       = errors.New("you already made a trade this round")
	ErrSameCurrency        = errors.New("target and payment currency must differ")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidPartner      = errors.New("invalid trade partner")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrGoalProtection      = errors.New("trade exceeds half of the goal amount")
)
