// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// stubRecommender implements Recommender for handler tests.
type stubRecommender struct {
	prefs    *recommend.UserPreferences
	prefsErr error
	resp     *recommend.Response
	err      error

	mu       sync.Mutex
	lastReq  recommend.Request
	lastUser string
	calls    int
}

func (s *stubRecommender) Recommend(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &recommend.Response{Recipes: []recommend.Recipe{}, Mode: req.Mode().String()}, nil
}

func (s *stubRecommender) LoadPreferences(_ context.Context, userID string) (*recommend.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUser = userID
	return s.prefs, s.prefsErr
}

func (s *stubRecommender) NormalizeRecipe(rec *recommend.RecipeRecord) recommend.Recipe {
	return recommend.Recipe{ID: rec.ID, Title: rec.Name, Image: "/placeholder.svg", Tags: []string{}}
}

func (s *stubRecommender) request() recommend.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq
}

// stubStore implements RecipeStore for handler tests.
type stubStore struct {
	recipes map[int]*recommend.RecipeRecord
	getErr  error
	pingErr error
}

func (s *stubStore) GetRecipe(_ context.Context, id int) (*recommend.RecipeRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	rec, ok := s.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %d: %w", id, recommend.ErrNotFound)
	}
	return rec, nil
}

func (s *stubStore) Ping(context.Context) error { return s.pingErr }

func newStubStore() *stubStore {
	return &stubStore{recipes: map[int]*recommend.RecipeRecord{
		7: {ID: 7, Name: "Green Curry", CuisinePath: "Asian/Thai/Curry", Ingredients: "chicken, basil", Directions: "Simmer."},
	}}
}

// testConfig disables rate limiting so route tests are independent.
func testConfig() *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	return cfg
}

func newTestRouter(engine Recommender, store RecipeStore) http.Handler {
	h := NewHandler(engine, store, HandlerConfig{Version: "test"})
	return NewRouter(h, testConfig()).SetupChi()
}

type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Cached    bool   `json:"cached"`
		RequestID string `json:"request_id"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func serve(t *testing.T, handler http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNotModified && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
		}
	}
	return rec, env
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func TestNewHandlerDefaults(t *testing.T) {
	t.Parallel()

	h := NewHandler(&stubRecommender{}, newStubStore(), HandlerConfig{})
	if h.cfg.RequestTimeout <= 0 {
		t.Errorf("RequestTimeout = %v, want positive default", h.cfg.RequestTimeout)
	}
	if h.cfg.CacheMaxAge <= 0 {
		t.Errorf("CacheMaxAge = %v, want positive default", h.cfg.CacheMaxAge)
	}
	if h.cfg.DefaultPersonalizedLimit != 6 || h.cfg.DefaultSimilarLimit != 5 || h.cfg.MaxLimit != 50 {
		t.Errorf("limits = %d/%d/%d, want 6/5/50",
			h.cfg.DefaultPersonalizedLimit, h.cfg.DefaultSimilarLimit, h.cfg.MaxLimit)
	}
}

func TestGetPersonalized(t *testing.T) {
	t.Parallel()

	prefs := &recommend.UserPreferences{CuisinePreferences: []string{"Thai"}}
	engine := &stubRecommender{
		prefs: prefs,
		resp: &recommend.Response{
			Recipes:  []recommend.Recipe{{ID: 1, Title: "Pad Thai", Tags: []string{"Asian"}}},
			Mode:     "personalized",
			Metadata: recommend.ResponseMetadata{RequestID: "req-1"},
		},
	}
	router := newTestRouter(engine, newStubStore())

	rec, env := serve(t, router, get("/api/v1/recommendations/personalized?user_id=u-42&limit=3"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}

	var data struct {
		Recipes []recommend.Recipe `json:"recipes"`
		Count   int                `json:"count"`
		Mode    string             `json:"mode"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Count != 1 || data.Recipes[0].Title != "Pad Thai" || data.Mode != "personalized" {
		t.Errorf("unexpected data: %+v", data)
	}

	req := engine.request()
	if req.Preferences != prefs {
		t.Error("loaded preferences were not passed to the engine")
	}
	if req.Limit != 3 {
		t.Errorf("Limit = %d, want 3", req.Limit)
	}
	if req.RequestID == "" || req.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("RequestID = %q, want the X-Request-ID header", req.RequestID)
	}
	if engine.lastUser != "u-42" {
		t.Errorf("LoadPreferences user = %q, want u-42", engine.lastUser)
	}
}

func TestGetPersonalizedAnonymous(t *testing.T) {
	t.Parallel()

	engine := &stubRecommender{}
	router := newTestRouter(engine, newStubStore())

	rec, env := serve(t, router, get("/api/v1/recommendations/personalized"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Recipes []recommend.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Recipes == nil {
		t.Error("recipes should be an empty array, not null")
	}
	if req := engine.request(); req.Limit != 6 || req.Preferences != nil {
		t.Errorf("anonymous request = %+v, want limit 6 and no preferences", req)
	}
}

func TestGetUserRecommendations(t *testing.T) {
	t.Parallel()

	engine := &stubRecommender{}
	router := newTestRouter(engine, newStubStore())

	rec, _ := serve(t, router, get("/api/v1/recommendations/user/alice?limit=2"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if engine.lastUser != "alice" {
		t.Errorf("user = %q, want alice", engine.lastUser)
	}
	if engine.request().Limit != 2 {
		t.Errorf("Limit = %d, want 2", engine.request().Limit)
	}
}

func TestLimitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "non_numeric", path: "/api/v1/recommendations/personalized?limit=abc", wantStatus: http.StatusBadRequest},
		{name: "zero", path: "/api/v1/recommendations/personalized?limit=0", wantStatus: http.StatusBadRequest},
		{name: "negative", path: "/api/v1/recommendations/user/bob?limit=-4", wantStatus: http.StatusBadRequest},
		{name: "similar_zero", path: "/api/v1/recommendations/similar/7?limit=0", wantStatus: http.StatusBadRequest},
		{name: "above_max", path: "/api/v1/recommendations/personalized?limit=500", wantStatus: http.StatusBadRequest},
		{name: "just_above_max", path: "/api/v1/recommendations/user/bob?limit=51", wantStatus: http.StatusBadRequest},
		{name: "similar_above_max", path: "/api/v1/recommendations/similar/7?cuisine_path=Asian&limit=51", wantStatus: http.StatusBadRequest},
		{name: "at_max", path: "/api/v1/recommendations/personalized?limit=50", wantStatus: http.StatusOK},
		{name: "empty_uses_default", path: "/api/v1/recommendations/personalized?limit=", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &stubRecommender{}
			router := newTestRouter(engine, newStubStore())
			rec, env := serve(t, router, get(tt.path))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest {
				if env.Error == nil || env.Error.Code != codeValidation {
					t.Errorf("error = %+v, want %s", env.Error, codeValidation)
				}
				if engine.calls != 0 {
					t.Error("engine should not be called for invalid input")
				}
			}
		})
	}
}

func TestConfiguredLimits(t *testing.T) {
	t.Parallel()

	engine := &stubRecommender{}
	h := NewHandler(engine, newStubStore(), HandlerConfig{
		DefaultPersonalizedLimit: 4,
		DefaultSimilarLimit:      2,
		MaxLimit:                 10,
	})
	router := NewRouter(h, testConfig()).SetupChi()

	rec, _ := serve(t, router, get("/api/v1/recommendations/personalized"))
	if rec.Code != http.StatusOK || engine.request().Limit != 4 {
		t.Errorf("status = %d, limit = %d, want 200 and 4", rec.Code, engine.request().Limit)
	}

	rec, _ = serve(t, router, get("/api/v1/recommendations/similar/7?cuisine_path=Asian"))
	if rec.Code != http.StatusOK || engine.request().Limit != 2 {
		t.Errorf("status = %d, limit = %d, want 200 and 2", rec.Code, engine.request().Limit)
	}

	rec, env := serve(t, router, get("/api/v1/recommendations/personalized?limit=11"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 above the configured max", rec.Code)
	}
	if env.Error == nil || env.Error.Message != "limit must be less than or equal to 10" {
		t.Errorf("error = %+v, want configured max in message", env.Error)
	}
}

func TestUserIDValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRecommender{}, newStubStore())
	rec, env := serve(t, router, get("/api/v1/recommendations/personalized?user_id=bad%01id"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != codeValidation {
		t.Errorf("error = %+v, want validation error", env.Error)
	}
}

func TestGetSimilar(t *testing.T) {
	t.Parallel()

	t.Run("explicit_cuisine_path", func(t *testing.T) {
		t.Parallel()

		engine := &stubRecommender{}
		store := newStubStore()
		store.getErr = errors.New("store must not be consulted")
		router := newTestRouter(engine, store)

		rec, _ := serve(t, router, get("/api/v1/recommendations/similar/99?cuisine_path=Italian/Pasta&limit=4"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		req := engine.request()
		if req.ExcludeID == nil || *req.ExcludeID != 99 {
			t.Errorf("ExcludeID = %v, want 99", req.ExcludeID)
		}
		if req.AnchorCuisinePath == nil || *req.AnchorCuisinePath != "Italian/Pasta" {
			t.Errorf("AnchorCuisinePath = %v, want Italian/Pasta", req.AnchorCuisinePath)
		}
		if req.Limit != 4 {
			t.Errorf("Limit = %d, want 4", req.Limit)
		}
		if rec.Header().Get("ETag") == "" {
			t.Error("similar responses should carry an ETag")
		}
	})

	t.Run("anchor_lookup", func(t *testing.T) {
		t.Parallel()

		engine := &stubRecommender{}
		router := newTestRouter(engine, newStubStore())

		rec, _ := serve(t, router, get("/api/v1/recommendations/similar/7"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		req := engine.request()
		if req.AnchorCuisinePath == nil || *req.AnchorCuisinePath != "Asian/Thai/Curry" {
			t.Errorf("AnchorCuisinePath = %v, want the stored path", req.AnchorCuisinePath)
		}
		if req.Limit != 5 {
			t.Errorf("Limit = %d, want default 5", req.Limit)
		}
	})

	t.Run("unknown_anchor", func(t *testing.T) {
		t.Parallel()

		engine := &stubRecommender{}
		router := newTestRouter(engine, newStubStore())

		rec, env := serve(t, router, get("/api/v1/recommendations/similar/12345"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if env.Error == nil || env.Error.Code != codeNotFound {
			t.Errorf("error = %+v, want %s", env.Error, codeNotFound)
		}
		if engine.calls != 0 {
			t.Error("engine should not be called for an unknown anchor")
		}
	})

	t.Run("store_failure", func(t *testing.T) {
		t.Parallel()

		store := newStubStore()
		store.getErr = errors.New("connection reset")
		router := newTestRouter(&stubRecommender{}, store)

		rec, env := serve(t, router, get("/api/v1/recommendations/similar/7"))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		if env.Error == nil || env.Error.Code != codeDataUnavailable {
			t.Errorf("error = %+v, want %s", env.Error, codeDataUnavailable)
		}
	})

	t.Run("invalid_recipe_id", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubRecommender{}, newStubStore())
		for _, path := range []string{"/api/v1/recommendations/similar/abc", "/api/v1/recommendations/similar/0"} {
			rec, _ := serve(t, router, get(path))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", path, rec.Code)
			}
		}
	})
}

func TestGetSimilarNotModified(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRecommender{}, newStubStore())
	first, _ := serve(t, router, get("/api/v1/recommendations/similar/7"))
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := get("/api/v1/recommendations/similar/7")
	req.Header.Set("If-None-Match", etag)
	second, _ := serve(t, router, req)
	if second.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", second.Code)
	}
	if second.Body.Len() != 0 {
		t.Error("304 response should have no body")
	}
}

func TestEngineErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid_request", err: fmt.Errorf("%w: bad limit", recommend.ErrInvalidRequest), wantStatus: http.StatusBadRequest, wantCode: codeValidation},
		{name: "not_found", err: recommend.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: codeNotFound},
		{name: "data_source", err: fmt.Errorf("%w: all batches failed", recommend.ErrDataSourceUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: codeDataUnavailable},
		{name: "no_provider", err: recommend.ErrNoDataProvider, wantStatus: http.StatusInternalServerError, wantCode: codeInternal},
		{name: "deadline", err: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError, wantCode: codeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(&stubRecommender{err: tt.err}, newStubStore())
			rec, env := serve(t, router, get("/api/v1/recommendations/personalized"))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Status != "error" || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("envelope = %+v, want code %s", env, tt.wantCode)
			}
		})
	}
}

func TestPreferenceLoadError(t *testing.T) {
	t.Parallel()

	engine := &stubRecommender{prefsErr: context.Canceled}
	router := newTestRouter(engine, newStubStore())
	rec, _ := serve(t, router, get("/api/v1/recommendations/personalized?user_id=u1"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if engine.calls != 0 {
		t.Error("Recommend should not run when preferences fail")
	}
}

func TestGetRecipe(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRecommender{}, newStubStore())

	rec, env := serve(t, router, get("/api/v1/recipes/7"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var detail struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		CuisinePath string `json:"cuisine_path"`
		Directions  string `json:"directions"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if detail.ID != 7 || detail.Title != "Green Curry" || detail.CuisinePath != "Asian/Thai/Curry" || detail.Directions != "Simmer." {
		t.Errorf("unexpected detail: %+v", detail)
	}

	missing, env := serve(t, router, get("/api/v1/recipes/8"))
	if missing.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != codeNotFound {
		t.Errorf("missing recipe: status %d error %+v, want 404 %s", missing.Code, env.Error, codeNotFound)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
	}{
		{name: "live", path: "/api/v1/health/live", wantStatus: http.StatusOK},
		{name: "live_ignores_store", path: "/api/v1/health/live", pingErr: errors.New("down"), wantStatus: http.StatusOK},
		{name: "ready", path: "/api/v1/health/ready", wantStatus: http.StatusOK},
		{name: "not_ready", path: "/api/v1/health/ready", pingErr: errors.New("down"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newStubStore()
			store.pingErr = tt.pingErr
			rec, env := serve(t, newTestRouter(&stubRecommender{}, store), get(tt.path))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusServiceUnavailable && (env.Error == nil || env.Error.Code != codeServiceNotReady) {
				t.Errorf("error = %+v, want %s", env.Error, codeServiceNotReady)
			}
		})
	}
}

func TestHealthReadyWithoutStore(t *testing.T) {
	t.Parallel()

	rec, _ := serve(t, newTestRouter(&stubRecommender{}, nil), get("/api/v1/health/ready"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRecommender{}, newStubStore())

	rec, env := serve(t, router, get("/api/v1/does-not-exist"))
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != codeRouteNotFound {
		t.Errorf("unknown route: status %d error %+v", rec.Code, env.Error)
	}

	rec, env = serve(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/personalized", nil))
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != codeMethodNotAllowed {
		t.Errorf("wrong method: status %d error %+v", rec.Code, env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubRecommender{}, newStubStore())
	serve(t, router, get("/api/v1/recommendations/personalized"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, get("/metrics"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	t.Parallel()

	engine := &stubRecommender{}
	router := newTestRouter(engine, newStubStore())
	req := get("/api/v1/recommendations/personalized")
	req.Header.Set("X-Request-ID", "upstream-123")

	rec, _ := serve(t, router, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-123" {
		t.Errorf("X-Request-ID = %q, want upstream-123", got)
	}
	if got := engine.request().RequestID; got != "upstream-123" {
		t.Errorf("engine RequestID = %q, want upstream-123", got)
	}
}

// staticProvider serves a fixed catalogue to a real engine.
type staticProvider struct {
	recipes []recommend.RecipeRecord
	prefs   map[string]*recommend.UserPreferences
}

func (p *staticProvider) FetchByCuisineSubstring(_ context.Context, _ []string, _ int) ([]recommend.RecipeRecord, error) {
	return p.recipes, nil
}

func (p *staticProvider) FetchGeneral(_ context.Context, _ int) ([]recommend.RecipeRecord, error) {
	return p.recipes, nil
}

func (p *staticProvider) FetchByRatingDesc(_ context.Context, excludeID int, _ int) ([]recommend.RecipeRecord, error) {
	out := make([]recommend.RecipeRecord, 0, len(p.recipes))
	for _, r := range p.recipes {
		if r.ID != excludeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (p *staticProvider) FetchUserPreferences(_ context.Context, userID string) (*recommend.UserPreferences, error) {
	return p.prefs[userID], nil
}

func TestRealEnginePersonalized(t *testing.T) {
	t.Parallel()

	cfg := recommend.DefaultConfig()
	cfg.Seed = 7
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	r1, r2 := 4.5, 3.0
	engine.SetDataProvider(&staticProvider{
		recipes: []recommend.RecipeRecord{
			{ID: 1, Name: "Pad Thai", CuisinePath: "Asian/Thai/Noodles", Ingredients: "rice noodles, peanuts", Rating: &r1},
			{ID: 2, Name: "Lasagna", CuisinePath: "European/Italian/Pasta", Ingredients: "pasta, beef", Rating: &r2},
			{ID: 3, Name: "Peanut Satay", CuisinePath: "Asian/Thai/Grill", Ingredients: "chicken, peanuts", Rating: &r1},
		},
		prefs: map[string]*recommend.UserPreferences{
			"u1": {CuisinePreferences: []string{"Italian"}},
			"u2": {CuisinePreferences: []string{"Thai"}, AvoidIngredients: []string{"peanuts"}},
		},
	})

	router := newTestRouter(engine, newStubStore())

	_, env := serve(t, router, get("/api/v1/recommendations/user/u1?limit=1"))
	var data struct {
		Recipes []recommend.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Recipes) != 1 || data.Recipes[0].ID != 2 {
		t.Errorf("u1 recipes = %+v, want Lasagna first", data.Recipes)
	}

	_, env = serve(t, router, get("/api/v1/recommendations/user/u2"))
	data.Recipes = nil
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	for _, r := range data.Recipes {
		if r.ID == 1 || r.ID == 3 {
			t.Errorf("u2 received recipe %d containing an avoided ingredient", r.ID)
		}
	}
}
