package smsactivate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	emailPath    = "/api/v2/emails"
	apiKeyHeader = "X-API-Key"
)

// GetEmailDomains lists mail domains available for site. An empty site lists all.
func (c *Client) GetEmailDomains(ctx context.Context, site string) (json.RawMessage, error) {
	q := url.Values{}
	setString(q, "site", site)
	return c.rest(ctx, http.MethodGet, emailPath+"/domains", q, nil)
}

// PurchaseEmail buys an email activation for site on mailDomain.
func (c *Client) PurchaseEmail(ctx context.Context, site, mailDomain string) (json.RawMessage, error) {
	payload := struct {
		Site       string `json:"site"`
		MailDomain string `json:"mailDomain"`
	}{Site: site, MailDomain: mailDomain}
	return c.rest(ctx, http.MethodPost, emailPath, nil, payload)
}

// GetEmailStatus fetches an email activation.
func (c *Client) GetEmailStatus(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.rest(ctx, http.MethodGet, emailPath+"/"+strconv.FormatInt(id, 10), nil, nil)
}

// CancelEmail cancels an email activation.
func (c *Client) CancelEmail(ctx context.Context, id int64) error {
	_, err := c.rest(ctx, http.MethodDelete, emailPath+"/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// ReorderEmail requests a new message on an existing email activation.
func (c *Client) ReorderEmail(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.rest(ctx, http.MethodPost, emailPath+"/"+strconv.FormatInt(id, 10)+"/reorder", nil, struct{}{})
}

// rest calls the JSON email API. Failure is decided by HTTP status only.
func (c *Client) rest(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body *bytes.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	var (
		req *http.Request
		err error
	)
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request for %s: invalid base URL", path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.do(req, path)
	if err != nil {
		return nil, err
	}
	return asJSON(raw), nil
}

// asJSON keeps JSON bodies as they are and quotes anything else as a JSON string.
func asJSON(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(strings.TrimSpace(string(trimmed)))
	return quoted
}
