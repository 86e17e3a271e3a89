// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package credits implements the per-user credit ledger that gates
// recommendation generation, and the grant catalog that refills it.
package credits

import (
	"errors"
	"sync"

	"github.com/tomtom215/moodmate/internal/metrics"
)

// DefaultInitialBalance is the number of free credits a new user starts with.
const DefaultInitialBalance = 10

var (
	// ErrInsufficientCredits is returned when a generation is attempted with a
	// zero balance. The engine is not called.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned by Credit for amounts <= 0.
	ErrInvalidAmount = errors.New("credit amount must be positive")
)

// Ledger is a non-negative balance. Decrements saturate at zero.
//
// Observers are notified with the new balance after every change, outside
// the ledger lock, so that they may persist it. Notifications from
// concurrent changes can arrive out of order.
type Ledger struct {
	mu       sync.Mutex
	balance  int
	observer func(balance int)
}

// NewLedger returns a ledger with the given starting balance.
// Negative values are clamped to zero.
func NewLedger(initial int) *Ledger {
	if initial < 0 {
		initial = 0
	}
	return &Ledger{balance: initial}
}

// SetObserver registers fn to be called after each balance change.
func (l *Ledger) SetObserver(fn func(balance int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer = fn
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Consume takes one credit. It returns false, and changes nothing, when the
// balance is zero.
func (l *Ledger) Consume() bool {
	l.mu.Lock()
	if l.balance <= 0 {
		l.mu.Unlock()
		metrics.RecordInsufficientCredits()
		return false
	}
	l.balance--
	balance, observer := l.balance, l.observer
	l.mu.Unlock()

	metrics.RecordCreditConsumed()
	if observer != nil {
		observer(balance)
	}
	return true
}

// Credit adds amount to the balance. There is no upper bound.
func (l *Ledger) Credit(amount int) error {
	return l.grant("grant", amount)
}

// Refund returns one reserved credit after a failed generation.
func (l *Ledger) Refund() {
	// amount is constant and positive
	_ = l.grant("refund", 1)
}

// Restore overwrites the balance with a persisted value without notifying
// the observer.
func (l *Ledger) Restore(balance int) {
	if balance < 0 {
		balance = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = balance
}

func (l *Ledger) grant(source string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	l.balance += amount
	balance, observer := l.balance, l.observer
	l.mu.Unlock()

	metrics.RecordCreditGrant(source, amount)
	if observer != nil {
		observer(balance)
	}
	return nil
}
