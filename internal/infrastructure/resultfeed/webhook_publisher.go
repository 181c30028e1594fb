package resultfeed

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openmix/mixqueue/internal/platform/logging"
	"github.com/openmix/mixqueue/internal/platform/resilience"
	"github.com/openmix/mixqueue/internal/usecase"
)

type WebhookPublisherConfig struct {
	// URL receives a POST per settled match.
	URL string
	// AuthToken, when set, is forwarded as X-Result-Feed-Token.
	AuthToken string
	Timeout   time.Duration
	Breaker   resilience.CircuitBreakerConfig
}

// WebhookPublisher announces settled match results to an external HTTP
// consumer, typically the chat gateway. Delivery is best effort: the caller
// has already persisted the ratings, so a failed delivery is logged and the
// breaker keeps a flapping endpoint from slowing settlements down.
type WebhookPublisher struct {
	client    *http.Client
	url       string
	authToken string
	breaker   *resilience.CircuitBreaker
	logger    *logging.Logger
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) (*WebhookPublisher, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	endpoint, err := validateWebhookURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid result feed url")
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Breaker.Enabled {
		normalized := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
		breaker = resilience.NewCircuitBreaker(
			normalized.FailureThreshold,
			normalized.OpenTimeout,
			normalized.HalfOpenMaxReq,
		)
	}

	return &WebhookPublisher{
		client: &http.Client{
			Timeout: timeout,
		},
		url:       endpoint,
		authToken: strings.TrimSpace(cfg.AuthToken),
		breaker:   breaker,
		logger:    logger,
	}, nil
}

func (p *WebhookPublisher) PublishMatchResult(ctx context.Context, event usecase.MatchResultEvent) error {
	if p.breaker != nil {
		if err := p.breaker.Allow(); err != nil {
			return crerr.Wrapf(err, "result feed %s", p.url)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		p.recordFailure()
		return crerr.Wrap(err, "marshal result event")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("resultfeed.url", p.url),
			attribute.String("resultfeed.match_id", event.MatchID),
			attribute.String("resultfeed.guild_id", event.GuildID),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(buf.B))
	if err != nil {
		p.recordFailure()
		return crerr.Wrap(err, "create result feed request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Set("X-Result-Feed-Token", p.authToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recordFailure()
		return crerr.Wrapf(err, "post result feed url=%s", p.url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		p.recordFailure()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return crerr.Newf("post result feed status=%d url=%s body=%s",
			resp.StatusCode, p.url, strings.TrimSpace(string(raw)))
	}

	if p.breaker != nil {
		p.breaker.RecordSuccess()
	}
	p.logger.InfoContext(ctx, "match result published",
		"guild_id", event.GuildID,
		"match_id", event.MatchID,
		"winner_team", event.WinnerTeam,
	)
	return nil
}

func (p *WebhookPublisher) recordFailure() {
	if p.breaker != nil {
		p.breaker.RecordFailure()
	}
}

func validateWebhookURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}
