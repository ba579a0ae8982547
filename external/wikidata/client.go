package wikidata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/football-archive/pipeline/internal/domain/namemap"
	"github.com/football-archive/pipeline/internal/platform/cache"
	"github.com/football-archive/pipeline/internal/platform/logging"
	"github.com/football-archive/pipeline/internal/platform/resilience"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
	"github.com/football-archive/pipeline/internal/usecase"
)

const (
	defaultEndpoint  = "https://query.wikidata.org/sparql"
	defaultUserAgent = "football-archive-pipeline/1.0"
	maxResponseBytes = 4 << 20
	entityPrefix     = "http://www.wikidata.org/entity/"
)

var errLookupTransient = crerr.New("wikidata transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	Endpoint   string
	UserAgent  string
	Timeout    time.Duration
	// Delay is the minimum gap between two requests across all workers.
	Delay time.Duration
	Retry resilience.RetryPolicy
	// CacheTTL of zero keeps answers for the life of the client.
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client looks up people on the Wikidata SPARQL endpoint by English label
// and birth date.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	limiter    *rate.Limiter
	retry      resilience.RetryPolicy
	breaker    *resilience.CircuitBreaker
	cache      *cache.Store[[]namemap.Candidate]
	logger     *logging.Logger
}

var _ namemap.Lookup = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
		retry:      cfg.Retry,
		breaker:    resilience.NewCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
		cache:      cache.NewStore[[]namemap.Candidate](cfg.CacheTTL),
		logger:     logger,
	}
}

// LookupPlayer returns every human whose English label or alias equals name
// and whose birth date is birthDate. Concurrent calls for the same key share
// one request and successful answers are memoized.
func (c *Client) LookupPlayer(ctx context.Context, name, birthDate string) ([]namemap.Candidate, error) {
	name = textnorm.Text(name)
	date := textnorm.Date(birthDate)
	if name == "" || date == "" {
		return nil, fmt.Errorf("%w: name and birth date are required", usecase.ErrInvalidInput)
	}

	return c.cache.GetOrLoad(ctx, name+"|"+date, func(ctx context.Context) ([]namemap.Candidate, error) {
		return c.fetch(ctx, name, date)
	})
}

func (c *Client) fetch(ctx context.Context, name, date string) ([]namemap.Candidate, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "wikidata circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: lookup service is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	query := buildQuery(name, date)
	var raw []byte
	err := c.retry.Do(ctx, isTransient, func(ctx context.Context, attempt int) error {
		body, reqErr := c.execute(ctx, query)
		if reqErr != nil {
			c.logger.DebugContext(ctx, "wikidata request failed", "name", name, "attempt", attempt, "error", reqErr)
			return reqErr
		}
		raw = body
		return nil
	})
	c.breaker.Record(err == nil || !isTransient(err))
	if err != nil {
		c.logger.WarnContext(ctx, "wikidata lookup failed", "name", name, "birth_date", date, "error", err)
		return nil, err
	}

	var resp sparqlResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return nil, crerr.Wrap(err, "decode sparql response")
	}
	return resp.candidates(), nil
}

func (c *Client) execute(ctx context.Context, query string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, crerr.Wrap(err, "wait for request slot")
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errLookupTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errLookupTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	statusErr := crerr.Newf("wikidata status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	if isRetryableStatus(resp.StatusCode) {
		return nil, crerr.Mark(statusErr, errLookupTransient)
	}
	return nil, statusErr
}

// buildQuery matches the exact English label or alias of a human (Q5)
// whose date of birth (P569) falls on date, with the Japanese label when
// one exists.
func buildQuery(name, date string) string {
	literal := escapeLiteral(name)
	return `SELECT ?item ?labelEN ?labelJA ?dob WHERE {
  { ?item rdfs:label "` + literal + `"@en } UNION { ?item skos:altLabel "` + literal + `"@en }
  ?item wdt:P31 wd:Q5 ;
        wdt:P569 ?dob .
  FILTER(STRSTARTS(STR(?dob), "` + date + `"))
  OPTIONAL { ?item rdfs:label ?labelEN . FILTER(LANG(?labelEN) = "en") }
  OPTIONAL { ?item rdfs:label ?labelJA . FILTER(LANG(?labelJA) = "ja") }
}
LIMIT 20`
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", " ",
	"\r", " ",
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

func isTransient(err error) bool {
	return crerr.Is(err, errLookupTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
