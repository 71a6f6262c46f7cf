package jsonstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/platform/resilience"
	"github.com/riskibarqy/ft5-league/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultBackoff         = 500 * time.Millisecond
	maxResponseBodySize    = 6 << 20
	maxAbbreviatedBodySize = 240
	maxRedirects           = 5
)

var (
	errTransient      = crerr.New("jsonstore transient failure")
	errMissingURL     = crerr.New("jsonstore document url is not configured")
	errUnexpectedHTTP = crerr.New("jsonstore unexpected http status")
	errTooManyHops    = crerr.New("jsonstore too many redirects")
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	URLs           map[usecase.Document]string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the league documents from a remote JSON store. It implements
// usecase.DocumentSource.
type Client struct {
	httpClient *fasthttp.Client
	urls       map[usecase.Document]string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker // nil when disabled
	flight     resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "ft5-league",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	urls := make(map[usecase.Document]string, len(cfg.URLs))
	for doc, raw := range cfg.URLs {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			urls[doc] = trimmed
		}
	}

	return &Client{
		httpClient: httpClient,
		urls:       urls,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger,
		breaker:    cfg.CircuitBreaker.Build(),
	}
}

func (c *Client) Fetch(ctx context.Context, doc usecase.Document) ([]byte, error) {
	target, ok := c.urls[doc]
	if !ok {
		return nil, crerr.Wrapf(errMissingURL, "document %s", doc)
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "jsonstore circuit breaker rejected request", "document", string(doc), "state", c.breaker.State())
			return nil, fmt.Errorf("%w: league data store is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err, _ := c.flight.Do(target, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, doc, target)
		if c.breaker != nil {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch %s", doc)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, doc usecase.Document, target string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, status, err := c.get(ctx, target)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		case status >= fasthttp.StatusOK && status < fasthttp.StatusMultipleChoices:
			return body, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Wrapf(errUnexpectedHTTP, "status=%d body=%s", status, abbreviateBody(body)), errTransient)
		default:
			return nil, crerr.Wrapf(errUnexpectedHTTP, "status=%d body=%s", status, abbreviateBody(body))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("jsonstore request failed")
	}
	c.logger.WarnContext(ctx, "jsonstore request failed", "document", string(doc), "url", redactURL(target), "error", lastErr)
	return nil, lastErr
}

// get issues one GET and follows up to maxRedirects redirects. The deadline is
// the earlier of the client timeout and ctx's deadline and covers every hop.
func (c *Client) get(ctx context.Context, target string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	for hops := 0; ; hops++ {
		if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
			return nil, 0, err
		}

		status := resp.StatusCode()
		if !fasthttp.StatusCodeIsRedirect(status) {
			body := append([]byte(nil), resp.Body()...)
			return body, status, nil
		}

		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return nil, status, nil
		}
		if hops >= maxRedirects {
			return nil, 0, crerr.Wrapf(errTooManyHops, "after %d hops", hops)
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

// redactURL drops query strings, which may carry access keys.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	parsed.RawQuery = ""
	parsed.User = nil
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxAbbreviatedBodySize {
		return text
	}
	return text[:maxAbbreviatedBodySize] + "..."
}
