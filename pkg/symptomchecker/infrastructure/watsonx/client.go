package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

const (
	DefaultIAMURL     = "https://iam.cloud.ibm.com/identity/token"
	DefaultAPIVersion = "2024-03-14"

	iamGrantType = "urn:ibm:params:oauth:grant-type:apikey"
	chatPath     = "/ml/v1/text/chat"
	// a token is refreshed a bit earlier than it actually expires
	tokenExpiryMargin = time.Minute
	maxResponseSize   = 1 << 20
)

// ChatParams decoding parameters of a chat call.
type ChatParams struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
}

type chatRequest struct {
	ModelID     string               `json:"model_id"`
	ProjectID   string               `json:"project_id"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	ModelID string `json:"model_id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Expiration  int64  `json:"expiration"`
}

// Client a focused client for the watsonx.ai chat endpoint. The API key is exchanged for an IAM bearer token which is
// cached until shortly before it expires.
type Client struct {
	credentials domain.Credentials
	httpClient  *http.Client
	iamURL      string
	version     string
	now         func() time.Time

	tokenMutex  sync.Mutex
	token       string
	tokenExpiry time.Time
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithIAMURL(iamURL string) Option {
	return func(c *Client) {
		c.iamURL = strings.TrimSpace(iamURL)
	}
}

func WithVersion(version string) Option {
	return func(c *Client) {
		c.version = strings.TrimSpace(version)
	}
}

func NewClient(credentials domain.Credentials, opts ...Option) (*Client, error) {
	if credentials.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigMissing, domain.CredentialAPIKey)
	}
	if credentials.ProjectID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigMissing, domain.CredentialProjectID)
	}
	if credentials.URL == "" {
		credentials.URL = domain.DefaultWatsonxURL
	}
	c := &Client{
		credentials: credentials,
		httpClient:  &http.Client{},
		iamURL:      DefaultIAMURL,
		version:     DefaultAPIVersion,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.iamURL == "" {
		c.iamURL = DefaultIAMURL
	}
	if c.version == "" {
		c.version = DefaultAPIVersion
	}
	return c, nil
}

// Chat submits the messages and returns the text of the first choice.
func (c *Client) Chat(ctx context.Context, params ChatParams, messages []domain.ChatMessage) (string, error) {
	if params.ModelID == "" {
		return "", errors.New("watsonx: model id must not be empty")
	}
	token, err := c.resolveToken(ctx)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(chatRequest{
		ModelID:     params.ModelID,
		ProjectID:   c.credentials.ProjectID,
		Messages:    messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("watsonx: marshal request: %w", err)
	}
	chatURL := c.chatURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("watsonx: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	raw, err := c.doJSONRequest(req, chatURL)
	if err != nil {
		var statusErr *common.HTTPStatusError
		if errors.As(err, &statusErr) && isAuthStatus(statusErr.StatusCode) {
			c.invalidateToken()
			return "", domain.NewInferenceError(domain.ErrAuth, err)
		}
		return "", wrapStatusError(err)
	}
	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", domain.NewInferenceError(domain.ErrMalformedResponse, fmt.Errorf("watsonx: decode response: %w", err))
	}
	if len(payload.Choices) == 0 {
		return "", domain.NewInferenceError(domain.ErrMalformedResponse, errors.New("watsonx: no choices in response"))
	}
	content := strings.TrimSpace(payload.Choices[0].Message.Content)
	if content == "" {
		return "", domain.NewInferenceError(domain.ErrEmptyResponse, nil)
	}
	return content, nil
}

func (c *Client) chatURL() string {
	query := url.Values{}
	query.Set("version", c.version)
	return strings.TrimRight(c.credentials.URL, "/") + chatPath + "?" + query.Encode()
}

func (c *Client) resolveToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}
	form := url.Values{}
	form.Set("grant_type", iamGrantType)
	form.Set("apikey", c.credentials.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("watsonx: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	raw, err := c.doJSONRequest(req, c.iamURL)
	if err != nil {
		var statusErr *common.HTTPStatusError
		if errors.As(err, &statusErr) && isIAMRejection(statusErr.StatusCode) {
			return "", domain.NewInferenceError(domain.ErrAuth, err)
		}
		return "", wrapStatusError(err)
	}
	var payload tokenResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", domain.NewInferenceError(domain.ErrAuth, fmt.Errorf("watsonx: decode token response: %w", err))
	}
	if payload.AccessToken == "" {
		return "", domain.NewInferenceError(domain.ErrAuth, errors.New("watsonx: IAM returned an empty token"))
	}
	c.token = payload.AccessToken
	c.tokenExpiry = c.tokenExpiryFrom(payload)
	return c.token, nil
}

func (c *Client) tokenExpiryFrom(payload tokenResponse) time.Time {
	var expiry time.Time
	switch {
	case payload.Expiration > 0:
		expiry = time.Unix(payload.Expiration, 0)
	case payload.ExpiresIn > 0:
		expiry = c.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	default:
		return c.now()
	}
	return expiry.Add(-tokenExpiryMargin)
}

func (c *Client) invalidateToken() {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	c.token = ""
}

// doJSONRequest transport failures are reported as domain.ErrNetwork, non-2xx statuses as a bare
// *common.HTTPStatusError which the caller classifies.
func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewInferenceError(domain.ErrNetwork, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &common.HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}
	buf, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, domain.NewInferenceError(domain.ErrNetwork, fmt.Errorf("read response body: %w", err))
	}
	return buf, nil
}

// wrapStatusError marks an unclassified status error as an inference failure. Other errors are already classified.
func wrapStatusError(err error) error {
	var statusErr *common.HTTPStatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %w", domain.ErrInferenceFailed, err)
	}
	return err
}

func isAuthStatus(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

// isIAMRejection IAM answers 400 to an unknown or malformed API key; 429 and 5xx mean it's unavailable.
func isIAMRejection(statusCode int) bool {
	return statusCode == http.StatusBadRequest || isAuthStatus(statusCode)
}
