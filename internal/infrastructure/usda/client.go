package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dietdesk/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRequestsPerHour = 1000
	defaultBurst           = 10
	maxAttempts            = 3
	baseBackoff            = 500 * time.Millisecond
	searchPageSize         = "25"
	searchDataTypes        = "Foundation,SR Legacy,Survey (FNDDS)"
	userAgent              = "DietDesk/1.0"
	maxBodyBytes           = 5 << 20
	maxErrorBodyBytes      = 512
)

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	debug       bool
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRequestsPerHour sets the outbound request budget
func WithRequestsPerHour(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(float64(n)/3600), defaultBurst)
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new USDA API client
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(defaultRequestsPerHour)/3600), defaultBurst),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseBackoff * time.Duration(1<<(attempt-1))
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// retryable reports whether a response status is worth another attempt
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// get executes a GET with rate limiting and retries on transient failures.
// It returns the body of the first 200 response.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrUSDAAPIFailure, ctx.Err())
			}
			c.logger.Warn("USDA request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
			continue
		}

		limit := int64(maxBodyBytes)
		if resp.StatusCode != http.StatusOK {
			limit = maxErrorBodyBytes
		}
		body, readErr := readLimitedBody(resp.Body, limit)
		resp.Body.Close()

		if c.debug {
			c.logger.Debug("USDA response",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.Int("bytes", len(body)),
			)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUSDAAPIFailure, readErr)
			}
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrFoodNotFound
		case retryable(resp.StatusCode):
			c.logger.Warn("USDA API transient error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUSDAAPIFailure, resp.StatusCode, string(body))
		}
	}

	c.logger.Error("USDA API retries exhausted", zap.Error(lastErr))
	return nil, lastErr
}

// SearchFoods searches for foods in the USDA database
func (c *Client) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", searchDataTypes)
	params.Add("pageSize", searchPageSize)
	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	if c.debug {
		c.logger.Debug("USDA search", zap.String("query", query))
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var searchResp domain.USDASearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(searchResp.Foods) == 0 {
		return nil, domain.ErrFoodNotFound
	}

	c.logger.Debug("USDA search results",
		zap.String("query", query),
		zap.Int("count", len(searchResp.Foods)),
		zap.Int("total_hits", searchResp.TotalHits),
	)
	return &searchResp, nil
}

// GetFoodDetails retrieves nutrient information for a specific food by FDC ID
func (c *Client) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/v1/food/%s?%s", c.baseURL, url.PathEscape(fdcID), params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var food domain.USDAFood
	if err := json.Unmarshal(body, &food); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &food, nil
}
