package tools

import (
	"context"
	"fmt"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
	"github.com/smsactivate/mcp-sms-activate/internal/services"
	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
)

// GetNumbersStatus reports how many numbers are available per service.
func GetNumbersStatus(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_numbers_status",
		Description: "Get available phone numbers quantity by country and service",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"country":  {Type: "integer", Description: "Country ID (e.g., 0 for Russia, 1 for Ukraine)"},
			"operator": {Type: "string", Description: `Operator name (e.g., "mts", "beeline")`},
		}),
	}
	type args struct {
		Country  *int   `json:"country"`
		Operator string `json:"operator"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		if err := nonNegative(desc.Name, "country", a.Country); err != nil {
			return protocol.CallResult{}, err
		}
		return dump(v.GetNumbersStatus(ctx, a.Country, a.Operator))
	})
}

// GetTopCountries lists the best countries for a service.
func GetTopCountries(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_top_countries",
		Description: "Get top countries for a specific service",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"service": {Type: "string", Description: `Service code (e.g., "tg" for Telegram, "wa" for WhatsApp)`},
		}, "service"),
	}
	type args struct {
		Service string `json:"service"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		return dump(v.GetTopCountriesByService(ctx, a.Service))
	})
}

// GetOperators lists operators of a country.
func GetOperators(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_operators",
		Description: "Get available operators for a country",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"country": {Type: "integer", Description: "Country ID"},
		}, "country"),
	}
	type args struct {
		Country *int `json:"country"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		if err := nonNegative(desc.Name, "country", a.Country); err != nil {
			return protocol.CallResult{}, err
		}
		return dump(v.GetOperators(ctx, *a.Country))
	})
}

// RequestNumber rents a number. The service argument may be a vendor code or a
// human name known to names.
func RequestNumber(v Vendor, names *services.Map) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "request_number",
		Description: "Request a phone number for SMS verification",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"service":  {Type: "string", Description: `Service code or name (e.g., "tg", "Telegram", "wa", "WhatsApp")`},
			"country":  {Type: "integer", Description: "Country ID (e.g., 0 for Russia)"},
			"operator": {Type: "string", Description: "Operator name"},
			"forward":  {Type: "integer", Description: "Forward option (0 or 1)"},
			"ref":      {Type: "string", Description: "Referral code"},
		}, "service"),
	}
	type args struct {
		Service  string `json:"service"`
		Country  *int   `json:"country"`
		Operator string `json:"operator"`
		Forward  *int   `json:"forward"`
		Ref      string `json:"ref"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		if err := nonNegative(desc.Name, "country", a.Country); err != nil {
			return protocol.CallResult{}, err
		}
		if a.Forward != nil && *a.Forward != 0 && *a.Forward != 1 {
			return protocol.CallResult{}, &ValidationError{Tool: desc.Name, Field: "forward", Reason: "must be 0 or 1"}
		}

		act, err := v.GetNumber(ctx, smsactivate.ActivationRequest{
			Service:  names.Resolve(a.Service),
			Country:  a.Country,
			Operator: a.Operator,
			Forward:  a.Forward,
			Ref:      a.Ref,
		})
		if err != nil {
			return protocol.CallResult{}, err
		}
		return protocol.TextResult(fmt.Sprintf("Phone number requested successfully!\nActivation ID: %s\nPhone: %s", act.ID, act.Phone)), nil
	})
}
