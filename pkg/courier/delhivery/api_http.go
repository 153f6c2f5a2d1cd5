package delhivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetCharges fetches the charge estimate from the Delhivery API.
// The charges endpoint is a GET with query parameters.
func (c *HTTPAPIClient) GetCharges(ctx context.Context, req *ChargesRequest) (*ChargesResponse, error) {
	q := url.Values{}
	q.Set("o_pin", req.OriginPin)
	q.Set("d_pin", req.DestinationPin)
	q.Set("cgm", strconv.FormatFloat(req.WeightGrams, 'f', -1, 64))
	q.Set("pt", req.PaymentType)
	if req.CODAmount > 0 {
		q.Set("cod", strconv.FormatFloat(req.CODAmount, 'f', 2, 64))
	}
	if req.Length > 0 {
		q.Set("l", strconv.FormatFloat(req.Length, 'f', -1, 64))
		q.Set("b", strconv.FormatFloat(req.Breadth, 'f', -1, 64))
		q.Set("h", strconv.FormatFloat(req.Height, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf("%s/api/kinko/v1/invoice/charges/.json?%s", c.baseURL, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building charges request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiToken)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charges request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result ChargesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode charges response: %w", err)
	}
	if result.Error != "" {
		return nil, &APIError{Code: "CHARGES_ERROR", Message: result.Error}
	}
	return &result, nil
}

func (c *HTTPAPIClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return &apiErr
	}
	return &APIError{
		Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Message: string(body),
	}
}
