package tools

import (
	"context"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

var emailIDSchema = map[string]protocol.JSONSchema{
	"emailId": {Type: "integer", Description: "Email activation ID"},
}

type emailIDArgs struct {
	EmailID int64 `json:"emailId"`
}

func (a emailIDArgs) check(tool string) error {
	if a.EmailID < 0 {
		return &ValidationError{Tool: tool, Field: "emailId", Reason: "must not be negative"}
	}
	return nil
}

// GetEmailDomains lists mail domains for a site.
func GetEmailDomains(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_email_domains",
		Description: "Get available email domains for a site",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"site": {Type: "string", Description: `Website for which to get email domains (e.g., "telegram.com")`},
		}),
	}
	type args struct {
		Site string `json:"site"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		return dumpRaw(v.GetEmailDomains(ctx, a.Site))
	})
}

// PurchaseEmail buys an email activation.
func PurchaseEmail(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "purchase_email",
		Description: "Purchase an email activation",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"site":       {Type: "string", Description: `Website for activation (e.g., "telegram.com")`},
			"mailDomain": {Type: "string", Description: `Email domain (e.g., "gmail.com")`},
		}, "site", "mailDomain"),
	}
	type args struct {
		Site       string `json:"site"`
		MailDomain string `json:"mailDomain"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		return dumpRaw(v.PurchaseEmail(ctx, a.Site, a.MailDomain))
	})
}

// GetEmailStatus fetches an email activation.
func GetEmailStatus(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_email_status",
		Description: "Get email activation status",
		InputSchema: protocol.ObjectSchema(emailIDSchema, "emailId"),
	}
	return newTool(desc, func(ctx context.Context, a emailIDArgs) (protocol.CallResult, error) {
		if err := a.check(desc.Name); err != nil {
			return protocol.CallResult{}, err
		}
		return dumpRaw(v.GetEmailStatus(ctx, a.EmailID))
	})
}

// CancelEmail cancels an email activation.
func CancelEmail(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "cancel_email",
		Description: "Cancel email activation",
		InputSchema: protocol.ObjectSchema(emailIDSchema, "emailId"),
	}
	return newTool(desc, func(ctx context.Context, a emailIDArgs) (protocol.CallResult, error) {
		if err := a.check(desc.Name); err != nil {
			return protocol.CallResult{}, err
		}
		if err := v.CancelEmail(ctx, a.EmailID); err != nil {
			return protocol.CallResult{}, err
		}
		return protocol.TextResult("Email activation cancelled successfully"), nil
	})
}

// ReorderEmail asks for another message on an email activation.
func ReorderEmail(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "reorder_email",
		Description: "Reorder email activation",
		InputSchema: protocol.ObjectSchema(emailIDSchema, "emailId"),
	}
	return newTool(desc, func(ctx context.Context, a emailIDArgs) (protocol.CallResult, error) {
		if err := a.check(desc.Name); err != nil {
			return protocol.CallResult{}, err
		}
		return dumpRaw(v.ReorderEmail(ctx, a.EmailID))
	})
}
