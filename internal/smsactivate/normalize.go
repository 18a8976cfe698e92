package smsactivate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	prefixBalance = "ACCESS_BALANCE"
	prefixAccess  = "ACCESS_"
	prefixStatus  = "STATUS_"
)

// Normalize classifies a raw legacy handler_api.php response body.
// BAD_, NO_ and ERROR_ sentinels are returned as *Error carrying the text verbatim.
func Normalize(body []byte) (Outcome, error) {
	data := strings.TrimSpace(string(body))

	if isStructuredJSON(data) {
		return Outcome{Kind: OutcomeJSON, Raw: data}, nil
	}

	switch {
	case strings.HasPrefix(data, prefixBalance):
		return Outcome{Kind: OutcomeBalance, Raw: data}, nil
	case strings.HasPrefix(data, prefixAccess):
		fields := strings.Split(data, ":")
		act := Activation{ID: strings.TrimPrefix(fields[0], prefixAccess)}
		if len(fields) > 1 {
			act.Phone = fields[1]
		}
		return Outcome{Kind: OutcomeAccess, Raw: data, Activation: act}, nil
	case strings.HasPrefix(data, prefixStatus):
		return Outcome{Kind: OutcomeStatus, Raw: data}, nil
	}

	if err := sentinelError(data); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeText, Raw: data}, nil
}

func sentinelError(data string) error {
	var kind ErrorKind
	switch {
	case strings.HasPrefix(data, "BAD_"):
		kind = KindBadParameter
	case strings.HasPrefix(data, "NO_"):
		kind = KindNoActivations
	case strings.HasPrefix(data, "ERROR_"):
		kind = KindUpstream
	default:
		return nil
	}
	return &Error{Kind: kind, Message: data}
}

// ParseStatus decodes a STATUS_ line. Unknown statuses come back as StatusRaw.
func ParseStatus(line string) Status {
	switch {
	case strings.HasPrefix(line, "STATUS_WAIT_CODE"):
		return Status{Kind: StatusWaitCode, Raw: line}
	case strings.HasPrefix(line, "STATUS_WAIT_RETRY"):
		return Status{Kind: StatusWaitRetry, Code: field(line, 1), Raw: line}
	case strings.HasPrefix(line, "STATUS_OK"):
		return Status{Kind: StatusOK, Code: field(line, 1), Raw: line}
	case strings.HasPrefix(line, "STATUS_CANCEL"):
		return Status{Kind: StatusCancel, Raw: line}
	default:
		return Status{Kind: StatusRaw, Raw: line}
	}
}

// ParseBalance accepts only ACCESS_BALANCE:<non-negative number>.
func ParseBalance(raw string) (Balance, error) {
	fields := strings.Split(strings.TrimSpace(raw), ":")
	if len(fields) != 2 || fields[0] != prefixBalance {
		return Balance{}, invalidBalance()
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Balance{}, invalidBalance()
	}
	return Balance{Amount: amount, Currency: DefaultCurrency}, nil
}

func invalidBalance() error {
	return &Error{Kind: KindMalformed, Err: ErrInvalidBalance}
}

func field(line string, i int) string {
	fields := strings.Split(line, ":")
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func isStructuredJSON(data string) bool {
	if data == "" || (data[0] != '{' && data[0] != '[') {
		return false
	}
	return json.Valid([]byte(data))
}

func rawJSON(data string) json.RawMessage {
	return json.RawMessage(data)
}
