package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func oauthTestConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "http://localhost/auth",
			TokenURL: "http://localhost/token",
		},
	}
}

func TestOAuthHandlerRejectsBadState(t *testing.T) {
	handler := NewOAuthHandler(oauthTestConfig(), "expected-state")

	req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	result, err := handler.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Error() == nil {
		t.Error("Wait() returned no error for a state mismatch")
	}
}

func TestOAuthHandlerRejectsProviderError(t *testing.T) {
	handler := NewOAuthHandler(oauthTestConfig(), "state1")

	req := httptest.NewRequest(http.MethodGet, "/callback?state=state1&error=access_denied&error_description=denied", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	result, err := handler.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Error() == nil {
		t.Error("Wait() returned no error for a denied authorization")
	}
}

func TestOAuthHandlerSingleCallback(t *testing.T) {
	handler := NewOAuthHandler(oauthTestConfig(), "state1")

	first := httptest.NewRequest(http.MethodGet, "/callback?state=wrong", nil)
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodGet, "/callback?state=state1&code=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, second)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("second callback status = %d, want 400", rec.Code)
	}
}

func TestOAuthHandlerWaitTimeout(t *testing.T) {
	handler := NewOAuthHandler(oauthTestConfig(), "state1")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := handler.Wait(ctx); err == nil {
		t.Error("Wait() returned without a callback or deadline")
	}
}

func TestOAuthHandlerRoutes(t *testing.T) {
	handler := NewOAuthHandler(oauthTestConfig(), "state1")
	routes := handler.Routes()
	if len(routes) != 1 || routes[0] != "/callback" {
		t.Errorf("Routes() = %v", routes)
	}
}

type pingHandler struct{ hits int }

func (p *pingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.hits++
	w.WriteHeader(http.StatusOK)
}

func (p *pingHandler) Routes() []string { return []string{"/ping"} }

func TestServerMiddlewareOrder(t *testing.T) {
	srv := New("localhost", 0, nil)

	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	srv.Use(mw("outer"), mw("inner"))
	ping := &pingHandler{}
	srv.Handler(ping)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, req)

	if ping.hits != 1 {
		t.Errorf("handler hit %d times, want 1", ping.hits)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}
