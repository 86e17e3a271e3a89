// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package credits

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Ad reward and subscription bonus amounts.
const (
	AdReward          = 5
	SubscriptionBonus = 50
)

var (
	// ErrUnknownPack is returned for an unrecognized pack or plan ID.
	ErrUnknownPack = errors.New("unknown credit offer")

	// ErrAdCooldown is returned when an ad reward is claimed too soon.
	ErrAdCooldown = errors.New("ad reward is cooling down")
)

// Pack is a one-off credit bundle. Price is informational only.
type Pack struct {
	ID      string `json:"id"`
	Credits int    `json:"credits"`
	Price   string `json:"price"`
}

// Plan is a subscription. Activation grants SubscriptionBonus credits.
type Plan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Credits  int    `json:"credits"`
	Interval string `json:"interval"`
}

// Offers lists everything a user can redeem.
type Offers struct {
	Packs    []Pack `json:"packs"`
	Plans    []Plan `json:"plans"`
	AdReward int    `json:"ad_reward"`
}

var packs = []Pack{
	{ID: "pack_20", Credits: 20, Price: "$1.99"},
	{ID: "pack_50", Credits: 50, Price: "$3.99"},
	{ID: "pack_100", Credits: 100, Price: "$6.99"},
	{ID: "pack_200", Credits: 200, Price: "$11.99"},
}

var plans = []Plan{
	{ID: "monthly", Name: "Monthly", Price: "$4.99", Credits: SubscriptionBonus, Interval: "month"},
	{ID: "yearly", Name: "Yearly", Price: "$39.99", Credits: SubscriptionBonus, Interval: "year"},
}

// Catalog returns a copy of the offer catalog.
func Catalog() Offers {
	out := Offers{
		Packs:    make([]Pack, len(packs)),
		Plans:    make([]Plan, len(plans)),
		AdReward: AdReward,
	}
	copy(out.Packs, packs)
	copy(out.Plans, plans)
	return out
}

// Grants redeems offers into a ledger. No money changes hands.
type Grants struct {
	ledger *Ledger
	ad     *rate.Limiter
	now    func() time.Time
}

// NewGrants binds the offer catalog to ledger with a private ad limiter.
// A non-positive adCooldown disables ad throttling.
func NewGrants(ledger *Ledger, adCooldown time.Duration) *Grants {
	return &Grants{
		ledger: ledger,
		ad:     rate.NewLimiter(cooldownLimit(adCooldown), 1),
		now:    time.Now,
	}
}

func cooldownLimit(cooldown time.Duration) rate.Limit {
	if cooldown <= 0 {
		return rate.Inf
	}
	return rate.Every(cooldown)
}

// AdLimiters keeps one ad cooldown limiter per user, so the cooldown holds
// across sessions of the same process.
type AdLimiters struct {
	mu    sync.Mutex
	limit rate.Limit
	now   func() time.Time
	users map[string]*rate.Limiter
}

// NewAdLimiters creates the registry. now defaults to time.Now.
func NewAdLimiters(cooldown time.Duration, now func() time.Time) *AdLimiters {
	if now == nil {
		now = time.Now
	}
	return &AdLimiters{
		limit: cooldownLimit(cooldown),
		now:   now,
		users: make(map[string]*rate.Limiter),
	}
}

// Grants binds ledger to the user's shared ad limiter.
func (a *AdLimiters) Grants(userID string, ledger *Ledger) *Grants {
	a.mu.Lock()
	lim, ok := a.users[userID]
	if !ok {
		lim = rate.NewLimiter(a.limit, 1)
		a.users[userID] = lim
	}
	a.mu.Unlock()
	return &Grants{ledger: ledger, ad: lim, now: a.now}
}

// Prune forgets limiters whose cooldown has elapsed at now and returns how
// many were dropped. A forgotten user starts with a full bucket, which is
// the state the dropped limiter was in.
func (a *AdLimiters) Prune(now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	dropped := 0
	for id, lim := range a.users {
		if lim.TokensAt(now) >= 1 {
			delete(a.users, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of tracked users.
func (a *AdLimiters) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.users)
}

// PurchasePack credits the pack's amount and returns the number of credits
// added.
func (g *Grants) PurchasePack(id string) (int, error) {
	for _, p := range packs {
		if p.ID == id {
			if err := g.ledger.grant("pack", p.Credits); err != nil {
				return 0, err
			}
			return p.Credits, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPack, id)
}

// WatchAd credits AdReward unless the cooldown has not elapsed.
func (g *Grants) WatchAd() (int, error) {
	if !g.ad.AllowN(g.now(), 1) {
		return 0, ErrAdCooldown
	}
	if err := g.ledger.grant("ad", AdReward); err != nil {
		return 0, err
	}
	return AdReward, nil
}

// Subscribe activates plan and returns the bonus it credited.
func (g *Grants) Subscribe(planID string) (int, error) {
	for _, p := range plans {
		if p.ID == planID {
			if err := g.ledger.grant("subscription", p.Credits); err != nil {
				return 0, err
			}
			return p.Credits, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPack, planID)
}
