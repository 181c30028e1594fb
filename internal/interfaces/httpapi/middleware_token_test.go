package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireInternalServiceToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("unconfigured token refuses all traffic", func(t *testing.T) {
		handler := RequireInternalServiceToken("", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/guilds", nil)
		req.Header.Set("X-Internal-Service-Token", "anything")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
	})

	t.Run("missing or wrong token is unauthorized", func(t *testing.T) {
		handler := RequireInternalServiceToken("secret", next)
		for _, token := range []string{"", "wrong"} {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/guilds", nil)
			if token != "" {
				req.Header.Set("X-Internal-Service-Token", token)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("token %q: expected status 401, got %d", token, rec.Code)
			}
		}
	})

	t.Run("matching token passes through", func(t *testing.T) {
		handler := RequireInternalServiceToken("secret", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/guilds", nil)
		req.Header.Set("X-Internal-Service-Token", "secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}
