package watttime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api2.watttime.org/v2"

var ErrUnauthorized = errors.New("watttime: unauthorized")

// StatusError is returned when WattTime answers with an unexpected status code.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("watttime %s: unexpected status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client は WattTime API のクライアントです。
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	tokens     TokenStore
	logger     *zap.Logger
}

func NewClient(baseURL, username, password string, tokens TokenStore, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     logger,
	}
}

// Login は Basic 認証でログインし、新しいトークンを取得します。
func (c *Client) Login(ctx context.Context) (*LoginResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/login", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)

	var result LoginResult
	if err := c.do(req, "/login", &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("watttime /login: empty token")
	}
	return &result, nil
}

// token returns the cached token or logs in for a new one.
func (c *Client) token(ctx context.Context) (string, error) {
	cached, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.Warn("Failed to read cached WattTime token", zap.Error(err))
	}
	if cached != "" {
		return cached, nil
	}

	result, err := c.Login(ctx)
	if err != nil {
		return "", err
	}
	if ttl := tokenTTL(result.Token, time.Now()); ttl > 0 {
		if err := c.tokens.Set(ctx, result.Token, ttl); err != nil {
			c.logger.Warn("Failed to cache WattTime token", zap.Error(err))
		}
	}
	return result.Token, nil
}

// GetData は指定したバランシングオーソリティの排出データを取得します。
func (c *Client) GetData(ctx context.Context, ba string, start, end time.Time) ([]GridEmissionDataPoint, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("ba", ba)
	query.Set("starttime", start.UTC().Format(time.RFC3339))
	query.Set("endtime", end.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var points []GridEmissionDataPoint
	err = c.do(req, "/data", &points)
	if errors.Is(err, ErrUnauthorized) {
		// 期限切れのトークンを破棄。再試行は呼び出し側に任せる
		if delErr := c.tokens.Delete(ctx); delErr != nil {
			c.logger.Warn("Failed to evict WattTime token", zap.Error(delErr))
		}
	}
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("watttime %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d", ErrUnauthorized, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("watttime %s: decode response: %w", path, err)
	}
	return nil
}
