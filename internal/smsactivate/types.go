package smsactivate

// DefaultCurrency is reported with every balance. The vendor does not transmit one.
const DefaultCurrency = "RUB"

// ActivationRequest holds the parameters of a getNumber call. Nil pointers are
// omitted from the query; the vendor treats a missing country differently from 0.
type ActivationRequest struct {
	Service  string
	Country  *int
	Operator string
	Forward  *int
	Ref      string
}

// Activation is a number issued by the vendor.
type Activation struct {
	ID    string `json:"activationId"`
	Phone string `json:"phone"`
}

// Balance is the account balance.
type Balance struct {
	Amount   float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// StatusKind discriminates Status.
type StatusKind string

const (
	StatusWaitCode  StatusKind = "WAIT_CODE"
	StatusWaitRetry StatusKind = "WAIT_RETRY"
	StatusOK        StatusKind = "OK"
	StatusCancel    StatusKind = "CANCEL"
	// StatusRaw marks a STATUS_ line this client does not know; Raw holds it unchanged.
	StatusRaw StatusKind = "RAW"
)

// Status is the decoded state of an activation.
type Status struct {
	Kind StatusKind
	Code string
	Raw  string
}

// Label is the status as shown to callers: the kind, or the raw line for unknown statuses.
func (s Status) Label() string {
	if s.Kind == StatusRaw {
		return s.Raw
	}
	return string(s.Kind)
}

// OutcomeKind discriminates Outcome.
type OutcomeKind int

const (
	OutcomeText OutcomeKind = iota
	OutcomeJSON
	OutcomeBalance
	OutcomeAccess
	OutcomeStatus
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeJSON:
		return "json"
	case OutcomeBalance:
		return "balance"
	case OutcomeAccess:
		return "access"
	case OutcomeStatus:
		return "status"
	default:
		return "text"
	}
}

// Outcome is a successfully classified legacy response.
type Outcome struct {
	Kind       OutcomeKind
	Raw        string
	Activation Activation
}

// Value returns the outcome in a form suitable for a structured dump.
func (o Outcome) Value() any {
	switch o.Kind {
	case OutcomeJSON:
		return rawJSON(o.Raw)
	case OutcomeAccess:
		return o.Activation
	case OutcomeStatus:
		return map[string]string{"status": o.Raw}
	default:
		return o.Raw
	}
}
