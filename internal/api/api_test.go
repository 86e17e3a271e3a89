// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/auth"
	"github.com/tomtom215/moodmate/internal/catalog"
	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/favorites"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/session"
	"github.com/tomtom215/moodmate/internal/storage"
	"github.com/tomtom215/moodmate/internal/swipe"
	"github.com/tomtom215/moodmate/internal/weather"
)

const testUser = "alice"

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type testEnv struct {
	handler  http.Handler
	store    *storage.MemoryStore
	sessions *session.Manager
}

type envOptions struct {
	initialCredits int
	rateLimit      int
	tokens         *TokenHandler
	authMiddleware *auth.Middleware
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalog.NewStaticSource(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	store := storage.NewMemoryStore()
	initial := opts.initialCredits
	if initial < 0 {
		initial = 0
	}
	manager, err := session.NewManager(session.Config{
		InitialCredits: initial,
		AdCooldown:     time.Hour,
		IdleTimeout:    time.Hour,
	}, session.Deps{
		Engine:      engine,
		Weather:     weather.StaticProvider{},
		Persistence: store,
		Sharer:      favorites.SharerFunc(func(context.Context, favorites.Shareable) error { return nil }),
		Logger:      zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(manager.CloseAll)

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = opts.rateLimit == 0
	mwCfg.RateLimitRequests = opts.rateLimit

	authMW := opts.authMiddleware
	if authMW == nil {
		authMW = auth.NewMiddleware(auth.ModeNone, nil)
	}

	router := NewRouter(NewHandler(manager, WithVersion("test")), authMW, NewChiMiddleware(mwCfg))
	if opts.tokens != nil {
		router.ConfigureTokenIssuer(opts.tokens)
	}
	return &testEnv{handler: router.SetupChi(), store: store, sessions: manager}
}

func (e *testEnv) do(t *testing.T, method, path, body string, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(auth.UserIDHeader, testUser)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		if header[i+1] == "" {
			req.Header.Del(header[i])
			continue
		}
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); strings.HasPrefix(ct, "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, env envelope, want string) {
	t.Helper()
	if env.Error == nil {
		t.Fatalf("expected error %s, got none", want)
	}
	if env.Error.Code != want {
		t.Errorf("error code = %q, want %q", env.Error.Code, want)
	}
}

func hasWarning(env envelope, prefix string) bool {
	for _, w := range env.Metadata.Warnings {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

func TestHealthLive_NoAuth(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodGet, "/api/v1/health/live", "", auth.UserIDHeader, "")
	expectStatus(t, rec, http.StatusOK)

	live := decodeData[LivenessResponse](t, body)
	if live.Status != "ok" || live.Version != "test" {
		t.Errorf("live = %+v", live)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestHealthReady(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})
	env.do(t, http.MethodGet, "/api/v1/credits", "")

	rec, body := env.do(t, http.MethodGet, "/api/v1/health/ready", "")
	expectStatus(t, rec, http.StatusOK)
	ready := decodeData[ReadinessResponse](t, body)
	if ready.Status != "ready" || ready.Sessions != 1 {
		t.Errorf("ready = %+v", ready)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})
	env.do(t, http.MethodGet, "/api/v1/credits", "")

	rec, _ := env.do(t, http.MethodGet, "/metrics", "", auth.UserIDHeader, "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "moodmate_") {
		t.Error("metrics output has no moodmate_ series")
	}
}

func TestAuthenticationRequired(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodGet, "/api/v1/credits", "", auth.UserIDHeader, "")
	expectStatus(t, rec, http.StatusUnauthorized)
	expectErrorCode(t, body, CodeAuthentication)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodGet, "/api/v1/recommendations/podcast", "")
	expectStatus(t, rec, http.StatusNotFound)
	expectErrorCode(t, body, CodeNotFound)
}

func TestMood_RecordAndClassify(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodPost, "/api/v1/mood", `{"happiness": 9, "energy": 9}`)
	expectStatus(t, rec, http.StatusOK)
	got := decodeData[MoodResponse](t, body)
	if got.Sample.Happiness != 9 || got.Classification.Label == "" {
		t.Errorf("mood = %+v", got)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/mood/history", "")
	expectStatus(t, rec, http.StatusOK)
	if history := decodeData[[]models.MoodSample](t, body); len(history) != 1 {
		t.Errorf("history length = %d, want 1", len(history))
	}
}

func TestMood_Validation(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	tests := []struct {
		name string
		body string
	}{
		{"out of range", `{"happiness": 11, "energy": 5}`},
		{"zero", `{"happiness": 0, "energy": 5}`},
		{"unknown field", `{"happiness": 5, "energy": 5, "joy": 1}`},
		{"malformed", `{"happiness":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, http.MethodPost, "/api/v1/mood", tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			expectErrorCode(t, body, CodeValidation)
		})
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/mood", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[MoodResponse](t, body); got.Sample.Happiness != 7 {
		t.Errorf("rejected input changed mood: %+v", got.Sample)
	}
}

func TestWeather_Refresh(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodPost, "/api/v1/weather/refresh",
		`{"coordinates": {"latitude": 52.52, "longitude": 13.40, "label": "Berlin"}}`)
	expectStatus(t, rec, http.StatusOK)
	snap := decodeData[models.WeatherSnapshot](t, body)
	if snap.Location != "Berlin" {
		t.Errorf("Location = %q, want Berlin", snap.Location)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/weather/refresh", `{"coordinates": null}`)
	expectStatus(t, rec, http.StatusOK)
	if string(body.Data) != "null" {
		t.Errorf("data = %s, want null", body.Data)
	}
	if !hasWarning(body, "location permission denied") {
		t.Errorf("warnings = %v", body.Metadata.Warnings)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/weather", "")
	expectStatus(t, rec, http.StatusOK)
	if string(body.Data) != "null" {
		t.Errorf("weather after denial = %s, want null", body.Data)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/weather/refresh",
		`{"coordinates": {"latitude": 123, "longitude": 0}}`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectErrorCode(t, body, CodeValidation)
}

func TestCredits_Grants(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodGet, "/api/v1/credits", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[CreditsResponse](t, body); got.Balance != 10 {
		t.Errorf("initial balance = %d, want 10", got.Balance)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/credits/purchase", `{"pack_id": "pack_20"}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[CreditsResponse](t, body); got.Balance != 30 || got.Granted != 20 {
		t.Errorf("after purchase = %+v", got)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/credits/purchase", `{"pack_id": "pack_7"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectErrorCode(t, body, CodeValidation)

	rec, body = env.do(t, http.MethodPost, "/api/v1/credits/ad", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[CreditsResponse](t, body); got.Balance != 35 || got.Granted != credits.AdReward {
		t.Errorf("after ad = %+v", got)
	}
	rec, body = env.do(t, http.MethodPost, "/api/v1/credits/ad", "")
	expectStatus(t, rec, http.StatusTooManyRequests)
	expectErrorCode(t, body, CodeAdCooldown)

	rec, body = env.do(t, http.MethodPost, "/api/v1/credits/subscribe", `{"plan_id": "monthly"}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[CreditsResponse](t, body); got.Balance != 85 || got.Granted != credits.SubscriptionBonus {
		t.Errorf("after subscription = %+v", got)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/credits/offers", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(body.Data), "pack_200") {
		t.Errorf("offers = %s", body.Data)
	}
}

func TestCredits_DeferredWriteWarning(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})
	env.do(t, http.MethodGet, "/api/v1/credits", "")
	env.store.SetUnavailable(true)

	rec, body := env.do(t, http.MethodPost, "/api/v1/credits/purchase", `{"pack_id": "pack_20"}`)
	expectStatus(t, rec, http.StatusAccepted)
	if !hasWarning(body, "queued") {
		t.Errorf("warnings = %v", body.Metadata.Warnings)
	}
	if got := decodeData[CreditsResponse](t, body); got.Balance != 30 {
		t.Errorf("balance = %d, want 30 in memory", got.Balance)
	}
}

func TestRecommendations_GenerateAndDecide(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodPost, "/api/v1/recommendations/movie/generate", "")
	expectStatus(t, rec, http.StatusOK)
	gen := decodeData[GenerateResponse](t, body)
	if len(gen.Items) == 0 || len(gen.Items) > recommend.MaxK {
		t.Fatalf("generated %d items", len(gen.Items))
	}
	if gen.Balance != 9 {
		t.Errorf("balance = %d, want 9", gen.Balance)
	}
	if gen.Snapshot.State != swipe.StatePresenting || gen.Snapshot.Cursor != 0 {
		t.Errorf("snapshot = %+v", gen.Snapshot)
	}
	first := gen.Items[0]

	// A drag inside the threshold snaps back.
	rec, body = env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", `{"dx": 40}`)
	expectStatus(t, rec, http.StatusOK)
	if res := decodeData[swipe.Result](t, body); res.Outcome != swipe.OutcomeNoOp || res.Snapshot.Cursor != 0 {
		t.Errorf("snap back = %+v", res)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", `{"decision": "accept", "position": 0}`)
	expectStatus(t, rec, http.StatusOK)
	res := decodeData[swipe.Result](t, body)
	if res.Outcome != swipe.OutcomeAccepted || !res.FavoriteChanged || res.Item.ID != first.ID {
		t.Errorf("accept = %+v", res)
	}

	// A duplicate tap on the same card is stale.
	rec, body = env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", `{"decision": "accept", "position": 0}`)
	expectStatus(t, rec, http.StatusConflict)
	expectErrorCode(t, body, CodeConflict)

	rec, body = env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", `{"dx": -300}`)
	expectStatus(t, rec, http.StatusOK)
	if res := decodeData[swipe.Result](t, body); res.Outcome != swipe.OutcomeRejected || res.Position != 1 {
		t.Errorf("reject = %+v", res)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/favorites?type=movie", "")
	expectStatus(t, rec, http.StatusOK)
	favs := decodeData[[]favorites.Entry](t, body)
	if len(favs) != 1 || favs[0].Item.ID != first.ID {
		t.Errorf("favorites = %+v", favs)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/recommendations/recent", "")
	expectStatus(t, rec, http.StatusOK)
	if recent := decodeData[[]session.RecentEntry](t, body); len(recent) != len(gen.Items) {
		t.Errorf("recent = %d entries, want %d", len(recent), len(gen.Items))
	}
}

func TestRecommendations_Undo(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodPost, "/api/v1/recommendations/music/undo", "")
	expectStatus(t, rec, http.StatusConflict)
	expectErrorCode(t, body, CodeNothingToUndo)

	env.do(t, http.MethodPost, "/api/v1/recommendations/music/generate", "")
	env.do(t, http.MethodPost, "/api/v1/recommendations/music/decide", `{"decision": "accept"}`)

	rec, body = env.do(t, http.MethodPost, "/api/v1/recommendations/music/undo", "")
	expectStatus(t, rec, http.StatusOK)
	res := decodeData[swipe.Result](t, body)
	if res.Outcome != swipe.OutcomeUndone || !res.FavoriteChanged || res.Position != 0 {
		t.Errorf("undo = %+v", res)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/favorites", "")
	expectStatus(t, rec, http.StatusOK)
	if favs := decodeData[[]favorites.Entry](t, body); len(favs) != 0 {
		t.Errorf("favorites after undo = %d, want 0", len(favs))
	}
}

func TestRecommendations_DecideValidation(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	for _, payload := range []string{`{}`, `{"decision": "maybe"}`, `{"decision": "accept", "position": -1}`} {
		rec, body := env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", payload)
		expectStatus(t, rec, http.StatusBadRequest)
		expectErrorCode(t, body, CodeValidation)
	}

	// Idle controller: decisions are no-ops.
	rec, body := env.do(t, http.MethodPost, "/api/v1/recommendations/movie/decide", `{"decision": "reject"}`)
	expectStatus(t, rec, http.StatusOK)
	if res := decodeData[swipe.Result](t, body); res.Outcome != swipe.OutcomeNoOp {
		t.Errorf("idle decide outcome = %q", res.Outcome)
	}
}

func TestRecommendations_InsufficientCredits(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 0})

	rec, body := env.do(t, http.MethodPost, "/api/v1/recommendations/movie/generate", "")
	expectStatus(t, rec, http.StatusPaymentRequired)
	expectErrorCode(t, body, CodeInsufficientCredits)

	rec, body = env.do(t, http.MethodGet, "/api/v1/recommendations/movie", "")
	expectStatus(t, rec, http.StatusOK)
	if snap := decodeData[swipe.Snapshot](t, body); snap.State != swipe.StateIdle || len(snap.Items) != 0 {
		t.Errorf("snapshot after refusal = %+v", snap)
	}
}

func TestFilters_DraftApplyReset(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, _ := env.do(t, http.MethodPut, "/api/v1/filters/movie",
		`{"genres": ["Comedy"], "year_range": {"min": 2000, "max": 1990}, "runtime_range": {"min": 60, "max": 180}, "streaming_services": []}`)
	expectStatus(t, rec, http.StatusOK)

	rec, body := env.do(t, http.MethodPost, "/api/v1/filters/movie/apply", "")
	expectStatus(t, rec, http.StatusBadRequest)
	expectErrorCode(t, body, CodeValidation)

	rec, body = env.do(t, http.MethodGet, "/api/v1/filters/movie", "")
	expectStatus(t, rec, http.StatusOK)
	view := decodeData[struct {
		Draft  models.MovieFilter `json:"draft"`
		Active models.MovieFilter `json:"active"`
	}](t, body)
	if view.Active.YearRange.Min != models.DefaultMinYear || len(view.Active.Genres) != 0 {
		t.Errorf("invalid draft leaked into active: %+v", view.Active)
	}
	if len(view.Draft.Genres) != 1 {
		t.Errorf("draft lost: %+v", view.Draft)
	}

	env.do(t, http.MethodPut, "/api/v1/filters/music", `{"genres": ["Jazz"], "mood": "Relaxed", "artists": []}`)
	rec, body = env.do(t, http.MethodPost, "/api/v1/filters/music/apply", "")
	expectStatus(t, rec, http.StatusOK)
	music := decodeData[struct {
		Active models.MusicFilter `json:"active"`
	}](t, body)
	if music.Active.Mood != "Relaxed" || len(music.Active.Genres) != 1 {
		t.Errorf("applied music filter = %+v", music.Active)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/filters/movie/reset", "")
	expectStatus(t, rec, http.StatusOK)
	view = decodeData[struct {
		Draft  models.MovieFilter `json:"draft"`
		Active models.MovieFilter `json:"active"`
	}](t, body)
	if len(view.Draft.Genres) != 0 || view.Draft.YearRange.Max != models.DefaultMaxYear {
		t.Errorf("reset draft = %+v", view.Draft)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/filters/options", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(body.Data), "movie_genres") {
		t.Errorf("options = %s", body.Data)
	}
}

func TestFavorites_AddRemoveShare(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})
	item := `{"item": {"id": "x1", "type": "movie", "title": "Arrival", "genre": "Sci-Fi", "movie": {"director": "Denis Villeneuve", "year": 2016, "duration": 116}}}`

	rec, body := env.do(t, http.MethodPost, "/api/v1/favorites", item)
	expectStatus(t, rec, http.StatusCreated)
	if got := decodeData[FavoriteChangeResponse](t, body); !got.Changed || got.Count != 1 {
		t.Errorf("add = %+v", got)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/favorites", item)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[FavoriteChangeResponse](t, body); got.Changed {
		t.Error("duplicate add reported a change")
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/favorites/x1/share", "")
	expectStatus(t, rec, http.StatusOK)
	if share := decodeData[favorites.Shareable](t, body); !strings.Contains(share.Text, "Denis Villeneuve") {
		t.Errorf("share text = %q", share.Text)
	}

	rec, body = env.do(t, http.MethodPost, "/api/v1/favorites/nope/share", "")
	expectStatus(t, rec, http.StatusNotFound)
	expectErrorCode(t, body, CodeNotFound)

	rec, body = env.do(t, http.MethodDelete, "/api/v1/favorites/x1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[FavoriteChangeResponse](t, body); !got.Changed || got.Count != 0 {
		t.Errorf("remove = %+v", got)
	}

	rec, body = env.do(t, http.MethodDelete, "/api/v1/favorites/x1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[FavoriteChangeResponse](t, body); got.Changed {
		t.Error("second remove reported a change")
	}

	recs, err := env.store.LoadFavorites(context.Background(), testUser)
	if err != nil || len(recs) != 0 {
		t.Errorf("stored favorites = %v, %v", recs, err)
	}
}

func TestFavorites_Validation(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})

	rec, body := env.do(t, http.MethodPost, "/api/v1/favorites", `{"item": {"id": "x1", "type": "movie", "title": "No Details"}}`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectErrorCode(t, body, CodeValidation)

	rec, body = env.do(t, http.MethodGet, "/api/v1/favorites?type=podcast", "")
	expectStatus(t, rec, http.StatusBadRequest)
	expectErrorCode(t, body, CodeValidation)
}

func TestFavorites_StorageUnavailableQueues(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10})
	env.do(t, http.MethodGet, "/api/v1/favorites", "")
	env.store.SetUnavailable(true)

	rec, body := env.do(t, http.MethodPost, "/api/v1/favorites",
		`{"item": {"id": "s9", "type": "music", "title": "Blue in Green", "music": {"artist": "Miles Davis", "album": "Kind of Blue", "duration": "5:37"}}}`)
	expectStatus(t, rec, http.StatusAccepted)
	if !hasWarning(body, "queued") {
		t.Errorf("warnings = %v", body.Metadata.Warnings)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/favorites", "")
	expectStatus(t, rec, http.StatusOK)
	if favs := decodeData[[]favorites.Entry](t, body); len(favs) != 1 {
		t.Errorf("in-memory favorites = %d, want 1", len(favs))
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, envOptions{initialCredits: 10, rateLimit: 2})

	for i := 0; i < 2; i++ {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/credits", "")
		expectStatus(t, rec, http.StatusOK)
	}
	rec, body := env.do(t, http.MethodGet, "/api/v1/credits", "")
	expectStatus(t, rec, http.StatusTooManyRequests)
	expectErrorCode(t, body, "RATE_LIMITED")
}

func TestTokenIssuanceAndJWTAuth(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	issuer, err := auth.NewIssuer(secret, "moodmate", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	verifier, err := auth.NewVerifier(secret, "moodmate")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	env := newTestEnv(t, envOptions{
		initialCredits: 3,
		tokens:         NewTokenHandler(issuer),
		authMiddleware: auth.NewMiddleware(auth.ModeJWT, verifier),
	})

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/token", `{"subject": "bob"}`, auth.UserIDHeader, "")
	expectStatus(t, rec, http.StatusOK)
	tok := decodeData[TokenResponse](t, body)
	if tok.Token == "" || tok.TokenType != "Bearer" {
		t.Fatalf("token = %+v", tok)
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/credits", "", auth.UserIDHeader, "", "Authorization", "Bearer "+tok.Token)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[CreditsResponse](t, body); got.Balance != 3 {
		t.Errorf("balance = %d, want 3", got.Balance)
	}

	// The X-User-ID header is ignored in jwt mode.
	rec, _ = env.do(t, http.MethodGet, "/api/v1/credits", "")
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestRespondJSON_ETag(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, &models.APIResponse{Status: "success", Data: map[string]int{"balance": 9}})

	etag := rec.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Errorf("ETag = %q", etag)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
