package tools

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
)

// fakeVendor records calls and replays canned results.
type fakeVendor struct {
	mu    sync.Mutex
	calls []string

	balance     smsactivate.Balance
	outcome     smsactivate.Outcome
	activation  smsactivate.Activation
	lastReq     smsactivate.ActivationRequest
	lastCountry *int
	ack         string
	status      smsactivate.Status
	raw         json.RawMessage
	err         error
}

func (f *fakeVendor) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeVendor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeVendor) GetBalance(context.Context) (smsactivate.Balance, error) {
	f.record("GetBalance")
	return f.balance, f.err
}

func (f *fakeVendor) GetNumbersStatus(_ context.Context, country *int, _ string) (smsactivate.Outcome, error) {
	f.record("GetNumbersStatus")
	f.lastCountry = country
	return f.outcome, f.err
}

func (f *fakeVendor) GetTopCountriesByService(context.Context, string) (smsactivate.Outcome, error) {
	f.record("GetTopCountriesByService")
	return f.outcome, f.err
}

func (f *fakeVendor) GetOperators(_ context.Context, country int) (smsactivate.Outcome, error) {
	f.record("GetOperators")
	f.lastCountry = &country
	return f.outcome, f.err
}

func (f *fakeVendor) GetNumber(_ context.Context, req smsactivate.ActivationRequest) (smsactivate.Activation, error) {
	f.record("GetNumber")
	f.lastReq = req
	return f.activation, f.err
}

func (f *fakeVendor) SetStatus(context.Context, string, int) (string, error) {
	f.record("SetStatus")
	return f.ack, f.err
}

func (f *fakeVendor) GetStatus(context.Context, string) (smsactivate.Status, error) {
	f.record("GetStatus")
	return f.status, f.err
}

func (f *fakeVendor) GetActiveActivations(context.Context) (smsactivate.Outcome, error) {
	f.record("GetActiveActivations")
	return f.outcome, f.err
}

func (f *fakeVendor) GetActivationHistory(context.Context) (smsactivate.Outcome, error) {
	f.record("GetActivationHistory")
	return f.outcome, f.err
}

func (f *fakeVendor) GetPrices(_ context.Context, country *int, _ string) (smsactivate.Outcome, error) {
	f.record("GetPrices")
	f.lastCountry = country
	return f.outcome, f.err
}

func (f *fakeVendor) GetCountries(context.Context) (smsactivate.Outcome, error) {
	f.record("GetCountries")
	return f.outcome, f.err
}

func (f *fakeVendor) GetServices(context.Context) (smsactivate.Outcome, error) {
	f.record("GetServices")
	return f.outcome, f.err
}

func (f *fakeVendor) GetEmailDomains(context.Context, string) (json.RawMessage, error) {
	f.record("GetEmailDomains")
	return f.raw, f.err
}

func (f *fakeVendor) PurchaseEmail(context.Context, string, string) (json.RawMessage, error) {
	f.record("PurchaseEmail")
	return f.raw, f.err
}

func (f *fakeVendor) GetEmailStatus(context.Context, int64) (json.RawMessage, error) {
	f.record("GetEmailStatus")
	return f.raw, f.err
}

func (f *fakeVendor) CancelEmail(context.Context, int64) error {
	f.record("CancelEmail")
	return f.err
}

func (f *fakeVendor) ReorderEmail(context.Context, int64) (json.RawMessage, error) {
	f.record("ReorderEmail")
	return f.raw, f.err
}
