package resultfeed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/openmix/mixqueue/internal/platform/resilience"
	"github.com/openmix/mixqueue/internal/usecase"
)

func sampleEvent() usecase.MatchResultEvent {
	return usecase.MatchResultEvent{
		GuildID:    "g1",
		MatchID:    "match-1",
		MapID:      "m-dust",
		WinnerTeam: 1,
		Updates: []usecase.MatchResultUpdate{
			{PlayerID: "p1", OldRating: 1000, NewRating: 1040, Won: true},
			{PlayerID: "p2", OldRating: 1000, NewRating: 960, Won: false},
		},
	}
}

func TestWebhookPublisher_PostsEventWithToken(t *testing.T) {
	t.Parallel()

	var gotToken atomic.Value
	var gotBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.Header.Get("X-Result-Feed-Token"))
		raw, _ := io.ReadAll(r.Body)
		gotBody.Store(raw)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	pub, err := NewWebhookPublisher(WebhookPublisherConfig{
		URL:       server.URL,
		AuthToken: "feed-token",
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	if err := pub.PublishMatchResult(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if token, _ := gotToken.Load().(string); token != "feed-token" {
		t.Fatalf("expected auth token header, got %q", token)
	}

	var decoded usecase.MatchResultEvent
	raw, _ := gotBody.Load().([]byte)
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal delivered body: %v", err)
	}
	if decoded.MatchID != "match-1" || len(decoded.Updates) != 2 {
		t.Fatalf("unexpected delivered event %+v", decoded)
	}
}

func TestWebhookPublisher_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	pub, err := NewWebhookPublisher(WebhookPublisherConfig{
		URL: server.URL,
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := pub.PublishMatchResult(ctx, sampleEvent()); err == nil {
			t.Fatalf("attempt %d: expected delivery error", i)
		}
	}

	err = pub.PublishMatchResult(ctx, sampleEvent())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit error, got %v", err)
	}
}

func TestNewWebhookPublisher_RejectsBadURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://feed.example.com", "http://"} {
		if _, err := NewWebhookPublisher(WebhookPublisherConfig{URL: raw}, nil); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}
