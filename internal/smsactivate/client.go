// Package smsactivate is a client for the SMS-Activate vendor API. It speaks both the
// legacy handler_api.php sentinel protocol and the JSON email activation API.
package smsactivate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smsactivate/mcp-sms-activate/internal/version"
)

const (
	DefaultBaseURL = "https://api.sms-activate.ae"
	// DefaultTimeout bounds every upstream call.
	DefaultTimeout = 30 * time.Second

	legacyPath   = "/stubs/handler_api.php"
	maxErrorBody = 4096
)

// Client issues calls against the vendor API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for upstream call tracing.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		apiKey:     apiKey,
		baseURL:    base,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     discard.WithField("component", "smsactivate"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetBalance returns the account balance.
func (c *Client) GetBalance(ctx context.Context) (Balance, error) {
	out, err := c.legacy(ctx, "getBalance", nil)
	if err != nil {
		return Balance{}, err
	}
	if out.Kind != OutcomeBalance {
		return Balance{}, invalidBalance()
	}
	return ParseBalance(out.Raw)
}

// GetNumbersStatus returns available number counts per service.
func (c *Client) GetNumbersStatus(ctx context.Context, country *int, operator string) (Outcome, error) {
	params := url.Values{}
	setInt(params, "country", country)
	setString(params, "operator", operator)
	return c.legacy(ctx, "getNumbersStatus", params)
}

// GetTopCountriesByService lists the best countries for a service code.
func (c *Client) GetTopCountriesByService(ctx context.Context, service string) (Outcome, error) {
	params := url.Values{}
	params.Set("service", service)
	return c.legacy(ctx, "getTopCountriesByService", params)
}

// GetOperators lists operators available in a country.
func (c *Client) GetOperators(ctx context.Context, country int) (Outcome, error) {
	params := url.Values{}
	setInt(params, "country", &country)
	return c.legacy(ctx, "getOperators", params)
}

// GetNumber rents a number for req.Service.
func (c *Client) GetNumber(ctx context.Context, req ActivationRequest) (Activation, error) {
	params := url.Values{}
	params.Set("service", req.Service)
	setInt(params, "country", req.Country)
	setString(params, "operator", req.Operator)
	setInt(params, "forward", req.Forward)
	setString(params, "ref", req.Ref)

	out, err := c.legacy(ctx, "getNumber", params)
	if err != nil {
		return Activation{}, err
	}
	if out.Kind != OutcomeAccess {
		return Activation{}, &Error{Kind: KindMalformed, Message: "unexpected getNumber response: " + out.Raw}
	}
	return out.Activation, nil
}

// SetStatus changes the state of an activation and returns the vendor acknowledgement,
// e.g. ACCESS_READY or ACCESS_CANCEL.
func (c *Client) SetStatus(ctx context.Context, id string, status int) (string, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("status", strconv.Itoa(status))

	out, err := c.legacy(ctx, "setStatus", params)
	if err != nil {
		return "", err
	}
	return out.Raw, nil
}

// GetStatus returns the decoded state of an activation.
func (c *Client) GetStatus(ctx context.Context, id string) (Status, error) {
	params := url.Values{}
	params.Set("id", id)

	out, err := c.legacy(ctx, "getStatus", params)
	if err != nil {
		return Status{}, err
	}
	if out.Kind != OutcomeStatus {
		return Status{Kind: StatusRaw, Raw: out.Raw}, nil
	}
	return ParseStatus(out.Raw), nil
}

// GetActiveActivations lists activations that are still open.
func (c *Client) GetActiveActivations(ctx context.Context) (Outcome, error) {
	return c.legacy(ctx, "getActiveActivations", nil)
}

// GetActivationHistory lists past activations.
func (c *Client) GetActivationHistory(ctx context.Context) (Outcome, error) {
	return c.legacy(ctx, "getActivationHistory", nil)
}

// GetPrices returns prices, optionally filtered by country and service.
func (c *Client) GetPrices(ctx context.Context, country *int, service string) (Outcome, error) {
	params := url.Values{}
	setInt(params, "country", country)
	setString(params, "service", service)
	return c.legacy(ctx, "getPrices", params)
}

// GetCountries lists countries known to the vendor.
func (c *Client) GetCountries(ctx context.Context) (Outcome, error) {
	return c.legacy(ctx, "getCountries", nil)
}

// GetServices lists services known to the vendor.
func (c *Client) GetServices(ctx context.Context) (Outcome, error) {
	return c.legacy(ctx, "getServices", nil)
}

func (c *Client) legacy(ctx context.Context, action string, params url.Values) (Outcome, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	q.Set("action", action)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+legacyPath+"?"+q.Encode(), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("build request for %s: invalid base URL", action)
	}

	body, err := c.do(req, action)
	if err != nil {
		return Outcome{}, err
	}
	out, err := Normalize(body)
	if err != nil {
		c.logger.WithField("action", action).Debugf("vendor error: %v", err)
		return Outcome{}, err
	}
	c.logger.WithFields(logrus.Fields{"action": action, "outcome": out.Kind}).Debug("vendor response")
	return out, nil
}

// do executes req and returns the body of a 2xx response. label names the call in
// logs and errors; the request URL is never included since it may carry the API key.
func (c *Client) do(req *http.Request, label string) ([]byte, error) {
	req.Header.Set("User-Agent", version.UserAgent())
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		c.logger.WithFields(logrus.Fields{"call": label, "elapsed": time.Since(start)}).Warnf("transport error: %v", err)
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("%s %s", req.Method, label), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "read response", Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"call":    label,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("upstream call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func statusError(status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Kind: KindUpstream, Status: status, Message: "API Error: " + detail}
}

func setInt(params url.Values, key string, v *int) {
	if v != nil {
		params.Set(key, strconv.Itoa(*v))
	}
}

func setString(params url.Values, key, v string) {
	if v != "" {
		params.Set(key, v)
	}
}
