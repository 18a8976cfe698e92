package smsactivate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) at(i int) recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[i]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func stubServer(t *testing.T, status int, reply string) (*httptest.Server, *recorder) {
	t.Helper()
	calls := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls.mu.Lock()
		defer calls.mu.Unlock()
		calls.calls = append(calls.calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
			body:   string(body),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestGetBalance(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, "ACCESS_BALANCE:12.50")
	c := NewClient("secret", srv.URL)

	bal, err := c.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal.Amount != 12.5 || bal.Currency != "RUB" {
		t.Fatalf("unexpected balance: %+v", bal)
	}

	got := calls.at(0)
	if got.method != http.MethodGet || got.path != "/stubs/handler_api.php" {
		t.Fatalf("unexpected request: %s %s", got.method, got.path)
	}
	if got.query.Get("action") != "getBalance" || got.query.Get("api_key") != "secret" {
		t.Fatalf("unexpected query: %v", got.query)
	}
}

func TestGetBalanceRejectsOtherShapes(t *testing.T) {
	srv, _ := stubServer(t, http.StatusOK, `{"balance":"12"}`)
	c := NewClient("secret", srv.URL)

	_, err := c.GetBalance(context.Background())
	if !errors.Is(err, ErrInvalidBalance) {
		t.Fatalf("expected ErrInvalidBalance, got %v", err)
	}
}

func TestGetBalanceBadKey(t *testing.T) {
	srv, _ := stubServer(t, http.StatusOK, "BAD_KEY")
	c := NewClient("wrong", srv.URL)

	_, err := c.GetBalance(context.Background())
	if err == nil || err.Error() != "BAD_KEY" {
		t.Fatalf("expected BAD_KEY, got %v", err)
	}
	if !IsKind(err, KindBadParameter) {
		t.Fatalf("expected bad parameter kind")
	}
}

func TestGetNumberOmitsAbsentParams(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, "ACCESS_NUMBER:79001234567")
	c := NewClient("secret", srv.URL)

	act, err := c.GetNumber(context.Background(), ActivationRequest{Service: "tg"})
	if err != nil {
		t.Fatalf("get number: %v", err)
	}
	if act.ID != "NUMBER" || act.Phone != "79001234567" {
		t.Fatalf("unexpected activation: %+v", act)
	}

	q := calls.at(0).query
	if q.Get("service") != "tg" {
		t.Fatalf("expected service=tg, got %v", q)
	}
	for _, key := range []string{"country", "operator", "forward", "ref"} {
		if _, ok := q[key]; ok {
			t.Fatalf("did not expect %s in %v", key, q)
		}
	}
}

func TestGetNumberSendsExplicitZeroCountry(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, "ACCESS_NUMBER:79001234567")
	c := NewClient("secret", srv.URL)

	zero, one := 0, 1
	_, err := c.GetNumber(context.Background(), ActivationRequest{
		Service:  "wa",
		Country:  &zero,
		Operator: "mts",
		Forward:  &one,
		Ref:      "abc",
	})
	if err != nil {
		t.Fatalf("get number: %v", err)
	}

	q := calls.at(0).query
	if vals, ok := q["country"]; !ok || vals[0] != "0" {
		t.Fatalf("expected country=0, got %v", q)
	}
	if q.Get("operator") != "mts" || q.Get("forward") != "1" || q.Get("ref") != "abc" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestGetNumberNoNumbers(t *testing.T) {
	srv, _ := stubServer(t, http.StatusOK, "NO_NUMBERS")
	c := NewClient("secret", srv.URL)

	_, err := c.GetNumber(context.Background(), ActivationRequest{Service: "tg"})
	if !IsKind(err, KindNoActivations) || err.Error() != "NO_NUMBERS" {
		t.Fatalf("expected NO_NUMBERS, got %v", err)
	}
}

func TestGetStatusAndSetStatus(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, "STATUS_OK:1234")
	c := NewClient("secret", srv.URL)

	st, err := c.GetStatus(context.Background(), "42")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if st.Kind != StatusOK || st.Code != "1234" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if calls.at(0).query.Get("id") != "42" {
		t.Fatalf("expected id=42")
	}

	ack, _ := stubServer(t, http.StatusOK, "ACCESS_CANCEL")
	c = NewClient("secret", ack.URL)
	got, err := c.SetStatus(context.Background(), "42", 8)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got != "ACCESS_CANCEL" {
		t.Fatalf("unexpected ack: %s", got)
	}
}

func TestListCallsPassJSONThrough(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{"0":{"id":0,"eng":"Russia"}}`)
	c := NewClient("secret", srv.URL)

	out, err := c.GetCountries(context.Background())
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	if out.Kind != OutcomeJSON {
		t.Fatalf("expected json outcome, got %v", out.Kind)
	}
	if _, ok := out.Value().(json.RawMessage); !ok {
		t.Fatalf("expected raw json value")
	}

	country := 6
	if _, err := c.GetPrices(context.Background(), &country, ""); err != nil {
		t.Fatalf("prices: %v", err)
	}
	q := calls.at(1).query
	if q.Get("action") != "getPrices" || q.Get("country") != "6" {
		t.Fatalf("unexpected query: %v", q)
	}
	if _, ok := q["service"]; ok {
		t.Fatalf("service should be omitted")
	}
}

func TestNon2xxIsUpstreamError(t *testing.T) {
	srv, _ := stubServer(t, http.StatusBadGateway, "gateway down")
	c := NewClient("secret", srv.URL)

	_, err := c.GetServices(context.Background())
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if verr.Kind != KindUpstream || verr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected error: %+v", verr)
	}
	if err.Error() != "API Error: gateway down" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("ACCESS_BALANCE:1"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("secret", srv.URL, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := c.GetBalance(context.Background())
	if !IsKind(err, KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Fatalf("api key leaked into error: %v", err)
	}
}

func TestEmailEndpoints(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{"id":77,"email":"a@b.c"}`)
	c := NewClient("secret", srv.URL)
	ctx := context.Background()

	if _, err := c.GetEmailDomains(ctx, "telegram.com"); err != nil {
		t.Fatalf("domains: %v", err)
	}
	raw, err := c.PurchaseEmail(ctx, "telegram.com", "gmail.com")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if string(raw) != `{"id":77,"email":"a@b.c"}` {
		t.Fatalf("unexpected body: %s", raw)
	}
	if _, err := c.GetEmailStatus(ctx, 77); err != nil {
		t.Fatalf("status: %v", err)
	}
	if err := c.CancelEmail(ctx, 77); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := c.ReorderEmail(ctx, 77); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	want := []struct{ method, path string }{
		{http.MethodGet, "/api/v2/emails/domains"},
		{http.MethodPost, "/api/v2/emails"},
		{http.MethodGet, "/api/v2/emails/77"},
		{http.MethodDelete, "/api/v2/emails/77"},
		{http.MethodPost, "/api/v2/emails/77/reorder"},
	}
	if calls.count() != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), calls.count())
	}
	for i, w := range want {
		got := calls.at(i)
		if got.method != w.method || got.path != w.path {
			t.Fatalf("call %d: expected %s %s, got %s %s", i, w.method, w.path, got.method, got.path)
		}
		if got.header.Get("X-API-Key") != "secret" {
			t.Fatalf("call %d: missing X-API-Key", i)
		}
		if _, ok := got.query["api_key"]; ok {
			t.Fatalf("call %d: api_key must not be sent as query", i)
		}
	}
	if calls.at(0).query.Get("site") != "telegram.com" {
		t.Fatalf("expected site filter")
	}

	var purchase map[string]string
	if err := json.Unmarshal([]byte(calls.at(1).body), &purchase); err != nil {
		t.Fatalf("decode purchase body: %v", err)
	}
	if purchase["site"] != "telegram.com" || purchase["mailDomain"] != "gmail.com" {
		t.Fatalf("unexpected purchase body: %v", purchase)
	}
}

func TestEmailErrorByStatusOnly(t *testing.T) {
	srv, _ := stubServer(t, http.StatusNotFound, `{"message":"not found"}`)
	c := NewClient("secret", srv.URL)

	_, err := c.GetEmailStatus(context.Background(), 1)
	if err == nil || err.Error() != `API Error: {"message":"not found"}` {
		t.Fatalf("unexpected error: %v", err)
	}

	// A 2xx body that reads like a sentinel is not interpreted.
	ok, _ := stubServer(t, http.StatusOK, "BAD_KEY")
	c = NewClient("secret", ok.URL)
	raw, err := c.GetEmailDomains(context.Background(), "")
	if err != nil {
		t.Fatalf("domains: %v", err)
	}
	if string(raw) != `"BAD_KEY"` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("k", "")
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.BaseURL())
	}
	c = NewClient("k", "http://example.test/ ")
	if c.BaseURL() != "http://example.test" {
		t.Fatalf("expected trimmed base url, got %s", c.BaseURL())
	}
}

func TestRequestsCarryUserAgent(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, "ACCESS_BALANCE:1")
	client := NewClient("secret", srv.URL)

	if _, err := client.GetBalance(context.Background()); err != nil {
		t.Fatalf("balance: %v", err)
	}
	if ua := calls.at(0).header.Get("User-Agent"); !strings.HasPrefix(ua, "mcp-sms-activate/") {
		t.Fatalf("unexpected user agent %q", ua)
	}
}

func TestBadBaseURLErrorOmitsAPIKey(t *testing.T) {
	client := NewClient("SECRETKEY", "http://[::1")

	_, err := client.GetBalance(context.Background())
	if err == nil {
		t.Fatalf("expected build error")
	}
	if strings.Contains(err.Error(), "SECRETKEY") {
		t.Fatalf("api key leaked: %v", err)
	}
	if !strings.Contains(err.Error(), "invalid base URL") {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = client.GetEmailStatus(context.Background(), 1)
	if err == nil || strings.Contains(err.Error(), "SECRETKEY") {
		t.Fatalf("unexpected email error %v", err)
	}
}
