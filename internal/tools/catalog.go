package tools

import (
	"context"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// GetPrices lists prices, optionally filtered.
func GetPrices(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_prices",
		Description: "Get prices for services by country",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"country": {Type: "integer", Description: "Country ID"},
			"service": {Type: "string", Description: "Service code"},
		}),
	}
	type args struct {
		Country *int   `json:"country"`
		Service string `json:"service"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		if err := nonNegative(desc.Name, "country", a.Country); err != nil {
			return protocol.CallResult{}, err
		}
		return dump(v.GetPrices(ctx, a.Country, a.Service))
	})
}

// GetCountries lists the vendor's countries.
func GetCountries(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_countries",
		Description: "Get list of available countries",
		InputSchema: protocol.ObjectSchema(nil),
	}
	return newTool(desc, func(ctx context.Context, _ noArgs) (protocol.CallResult, error) {
		return dump(v.GetCountries(ctx))
	})
}

// GetServices lists the vendor's services.
func GetServices(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_services",
		Description: "Get list of available services",
		InputSchema: protocol.ObjectSchema(nil),
	}
	return newTool(desc, func(ctx context.Context, _ noArgs) (protocol.CallResult, error) {
		return dump(v.GetServices(ctx))
	})
}
