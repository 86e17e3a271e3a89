// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/favorites"
	"github.com/tomtom215/moodmate/internal/filters"
	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/mood"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/storage"
	"github.com/tomtom215/moodmate/internal/swipe"
	"github.com/tomtom215/moodmate/internal/weather"
)

// ErrUnknownDomain is returned for a domain other than movie or music.
var ErrUnknownDomain = errors.New("unknown recommendation domain")

// persistTimeout bounds writes issued from ledger observers, which have no
// request context.
const persistTimeout = 5 * time.Second

// Session is the state of one user.
type Session struct {
	UserID string

	Mood         *mood.State
	Weather      *weather.State
	Credits      *credits.Ledger
	Grants       *credits.Grants
	Favorites    *favorites.Store
	MovieFilters *filters.MovieFilters
	MusicFilters *filters.MusicFilters

	controllers map[models.Domain]*swipe.Controller
	recent      *recentList

	persist  storage.Persistence
	provider weather.Provider
	sharer   favorites.Sharer
	now      func() time.Time
	logger   zerolog.Logger

	lastActive atomic.Int64

	// balanceMu orders balance writes; favMu pairs each favorites change
	// with its write.
	balanceMu sync.Mutex
	favMu     sync.Mutex

	warnMu      sync.Mutex
	creditsWarn error
}

func newSession(userID string, cfg *Config, deps *Deps, ads *credits.AdLimiters) *Session {
	logger := deps.Logger.With().Str("component", "session").Str("user_id", userID).Logger()
	ledger := credits.NewLedger(cfg.InitialCredits)

	s := &Session{
		UserID:       userID,
		Mood:         mood.NewState(deps.Now),
		Weather:      weather.NewState(nil),
		Credits:      ledger,
		Grants:       ads.Grants(userID, ledger),
		Favorites:    favorites.NewStore(deps.Now),
		MovieFilters: filters.NewMovieFilters(),
		MusicFilters: filters.NewMusicFilters(),
		recent:       newRecentList(cfg.RecentLimit),
		persist:      deps.Persistence,
		provider:     deps.Weather,
		sharer:       deps.Sharer,
		now:          deps.Now,
		logger:       logger,
	}
	if s.sharer == nil {
		s.sharer = favorites.LogSharer{Logger: logger}
	}

	opts := swipe.Options{RefundOnError: cfg.RefundOnGenerationError, Logger: logger}
	favs := sessionFavorites{s}
	s.controllers = map[models.Domain]*swipe.Controller{
		models.DomainMovie: swipe.NewController(models.DomainMovie, deps.Engine, ledger, favs, opts),
		models.DomainMusic: swipe.NewController(models.DomainMusic, deps.Engine, ledger, favs, opts),
	}
	s.Touch()
	return s
}

// restore seeds favorites and the balance from persistence. Unavailable
// storage leaves the defaults in place.
func (s *Session) restore(ctx context.Context) {
	recs, err := s.persist.LoadFavorites(ctx, s.UserID)
	switch {
	case err == nil:
		entries := make([]favorites.Entry, 0, len(recs))
		for i := range recs {
			entries = append(entries, favorites.Entry{Item: recs[i].Item, Type: recs[i].Type, AddedAt: recs[i].AddedAt})
		}
		s.Favorites.Restore(entries)
	case storage.IsUnavailable(err):
		s.logger.Warn().Err(err).Msg("Storage unavailable, starting with empty favorites")
	default:
		s.logger.Error().Err(err).Msg("Failed to load favorites")
	}

	balance, found, err := s.persist.LoadCreditBalance(ctx, s.UserID)
	switch {
	case err == nil && found:
		s.Credits.Restore(balance)
	case err == nil:
		// New user: store the initial grant.
		if perr := s.persist.PersistCreditBalance(ctx, s.UserID, s.Credits.Balance()); perr != nil {
			s.logger.Warn().Err(perr).Msg("Initial credit balance not persisted")
		}
	case storage.IsUnavailable(err):
		s.logger.Warn().Err(err).Msg("Storage unavailable, starting with default credits")
	default:
		s.logger.Error().Err(err).Msg("Failed to load credit balance")
	}

	s.Credits.SetObserver(s.persistBalance)
}

// persistBalance writes the ledger's current balance rather than the
// notified one, so the last write to finish always carries the latest value.
func (s *Session) persistBalance(int) {
	s.balanceMu.Lock()
	defer s.balanceMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	balance := s.Credits.Balance()
	err := s.persist.PersistCreditBalance(ctx, s.UserID, balance)
	if err != nil {
		s.logger.Warn().Err(err).Int("balance", balance).Msg("Credit balance not persisted")
	}
	s.warnMu.Lock()
	s.creditsWarn = err
	s.warnMu.Unlock()
}

// CreditsPersistError returns and clears the error of the last balance
// write, if it failed.
func (s *Session) CreditsPersistError() error {
	s.warnMu.Lock()
	defer s.warnMu.Unlock()
	err := s.creditsWarn
	s.creditsWarn = nil
	return err
}

// Touch marks the session as active.
func (s *Session) Touch() {
	s.lastActive.Store(s.now().UnixNano())
}

// LastActive returns the time of the last Touch.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Controller returns the swipe controller for domain.
func (s *Session) Controller(domain models.Domain) (*swipe.Controller, error) {
	c, ok := s.controllers[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	return c, nil
}

// BuildRequest assembles a generation request from the current mood,
// weather and active filters.
func (s *Session) BuildRequest(domain models.Domain) recommend.Request {
	return recommend.Request{
		Domain:  domain,
		Mood:    s.Mood.Current(),
		Weather: s.Weather.Current(),
		Movie:   s.MovieFilters.Active(),
		Music:   s.MusicFilters.Active(),
	}
}

// Generate spends a credit and loads a new list into the domain's
// controller. Results are added to the recent list.
func (s *Session) Generate(ctx context.Context, domain models.Domain) ([]models.Item, error) {
	ctrl, err := s.Controller(domain)
	if err != nil {
		return nil, err
	}
	req := s.BuildRequest(domain)
	req.RequestID = logging.RequestIDFromContext(ctx)

	items, err := ctrl.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	s.recent.push(items, s.now())
	return items, nil
}

// Recent returns the recent recommendations, newest first.
func (s *Session) Recent() []RecentEntry {
	return s.recent.list()
}

// RefreshWeather fetches weather for coords. See weather.Refresh for the
// error contract.
func (s *Session) RefreshWeather(ctx context.Context, coords *weather.Coordinates) (*models.WeatherSnapshot, error) {
	return weather.Refresh(ctx, s.Weather, s.provider, coords)
}

// AddFavorite inserts item and persists it when it is new. A non-nil error
// with changed == true means the favorite is saved in memory only for now.
//
//nolint:gocritic // hugeParam: item is copied into the store
func (s *Session) AddFavorite(ctx context.Context, item models.Item, typ models.Domain) (bool, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	if !s.Favorites.Add(item, typ) {
		return false, nil
	}
	entry, ok := s.Favorites.Get(item.ID)
	if !ok {
		return true, nil
	}
	rec := storage.FavoriteRecord{Item: entry.Item, Type: entry.Type, AddedAt: entry.AddedAt}
	return true, s.persist.SaveFavorite(ctx, s.UserID, rec)
}

// RemoveFavorite removes id and persists the removal when it existed.
func (s *Session) RemoveFavorite(ctx context.Context, id string) (bool, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	if !s.Favorites.Remove(id) {
		return false, nil
	}
	return true, s.persist.DeleteFavorite(ctx, s.UserID, id)
}

// ShareFavorite hands the favorite to the configured sharer.
func (s *Session) ShareFavorite(ctx context.Context, id string) (favorites.Shareable, error) {
	return s.Favorites.Share(ctx, id, s.sharer)
}

// Close cancels pending generations.
func (s *Session) Close() {
	for _, c := range s.controllers {
		c.Close()
	}
}

// sessionFavorites routes swipe accepts through the session so they are
// persisted.
type sessionFavorites struct {
	s *Session
}

//nolint:gocritic // hugeParam: signature fixed by swipe.Favorites
func (f sessionFavorites) Add(ctx context.Context, item models.Item, typ models.Domain) (bool, error) {
	return f.s.AddFavorite(ctx, item, typ)
}

func (f sessionFavorites) Remove(ctx context.Context, id string) (bool, error) {
	return f.s.RemoveFavorite(ctx, id)
}
