package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// GetBalance reports the account balance.
func GetBalance(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_balance",
		Description: "Get account balance",
		InputSchema: protocol.ObjectSchema(nil),
	}
	return newTool(desc, func(ctx context.Context, _ noArgs) (protocol.CallResult, error) {
		bal, err := v.GetBalance(ctx)
		if err != nil {
			return protocol.CallResult{}, err
		}
		amount := strconv.FormatFloat(bal.Amount, 'f', -1, 64)
		return protocol.TextResult(fmt.Sprintf("Balance: %s %s", amount, bal.Currency)), nil
	})
}
