package fatsecret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneHour         = 60 * 60
	foodCacheExpire = oneHour

	// tokens are dropped from the cache this long before FatSecret expires them
	tokenExpiryMargin = 30

	tokenCacheKey = "token"
	maxBodyBytes  = 4 << 20
)

var (
	ErrCredentialsMissing = errors.New("fatsecret_credentials_missing")
	ErrFoodNotFound       = errors.New("fatsecret_food_not_found")
)

type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIURL       string
}

type Client struct {
	config         Config
	httpClient     *http.Client
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewClient(config Config, httpClient *http.Client, metricsManager *metrics.Manager) *Client {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Client{
		config:         config,
		httpClient:     httpClient,
		cache:          freecache.NewCache(cacheSize),
		metricsManager: metricsManager,
	}
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return "", ErrCredentialsMissing
	}

	if token, err := c.cache.Get([]byte(tokenCacheKey)); err == nil {
		return string(token), nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fatsecret_token_failed: %d %s", resp.StatusCode, respBytes)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBytes, &tokenResp); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("fatsecret_token_failed: empty access token")
	}

	if ttl := tokenResp.ExpiresIn - tokenExpiryMargin; ttl > 0 {
		if err := c.cache.Set([]byte(tokenCacheKey), []byte(tokenResp.AccessToken), ttl); err != nil {
			log.Errorf("cache fatsecret token: %s", err)
		}
	}

	return tokenResp.AccessToken, nil
}

// call runs one platform API method and decodes the JSON payload into dst.
func (c *Client) call(ctx context.Context, method string, params url.Values, dst any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fatsecret.call")
	span.SetAttributes(attribute.String("fatsecret.method", method))
	defer func() {
		result := "ok"
		if err != nil {
			result = "failed"
		}
		if c.metricsManager != nil {
			c.metricsManager.CounterFatSecretRequests.WithLabelValues(method, result).Inc()
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("method", method)
	query.Set("format", "json")
	query.Set("v", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var envelope errorEnvelope
	_ = json.Unmarshal(respBytes, &envelope)
	if resp.StatusCode != http.StatusOK || envelope.failed() {
		description := envelope.message()
		if description == "" {
			description = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("fatsecret_request_failed: %s", description)
	}

	if err := json.Unmarshal(respBytes, dst); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", method, err)
	}
	return nil
}

func (c *Client) Autocomplete(ctx context.Context, query string, maxResults int) ([]Suggestion, error) {
	var resp autocompleteResponse
	err := c.call(ctx, "foods.autocomplete", url.Values{
		"search_expression": {query},
		"max_results":       {strconv.Itoa(maxResults)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return toSuggestions(resp.items()), nil
}

func (c *Client) Search(ctx context.Context, query string, page, maxResults int) ([]SearchItem, error) {
	var resp searchResponse
	err := c.call(ctx, "foods.search", url.Values{
		"search_expression": {query},
		"max_results":       {strconv.Itoa(maxResults)},
		"page_number":       {strconv.Itoa(page)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Foods == nil {
		return []SearchItem{}, nil
	}
	return toSearchItems(resp.Foods.Food), nil
}

// Food returns one food with its servings. Results are cached for an hour.
func (c *Client) Food(ctx context.Context, foodID string) (*Food, error) {
	cacheKey := []byte("food::" + foodID)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		f := &Food{}
		if err := json.Unmarshal(cached, f); err == nil {
			log.Tracef("found fatsecret food %s in cache", foodID)
			return f, nil
		} else {
			log.Errorf("unmarshal cached fatsecret food %s: %s", foodID, err)
		}
	}

	var resp foodResponse
	if err := c.call(ctx, "food.get", url.Values{"food_id": {foodID}}, &resp); err != nil {
		return nil, err
	}
	if resp.Food == nil {
		return nil, ErrFoodNotFound
	}

	f := toFood(*resp.Food)
	if foodBytes, err := json.Marshal(f); err == nil {
		if err := c.cache.Set(cacheKey, foodBytes, foodCacheExpire); err != nil {
			log.Errorf("failed to write fatsecret food cache for %s: %s", foodID, err)
		}
	}

	return f, nil
}
