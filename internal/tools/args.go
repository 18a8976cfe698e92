package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// ValidationError reports arguments that do not match a tool's declared input shape.
type ValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, e.Reason)
	}
	return fmt.Sprintf("invalid arguments for %s: %q %s", e.Tool, e.Field, e.Reason)
}

// decodeArgs checks raw against schema and decodes the accepted fields into out.
// Null values count as absent; properties the schema does not declare are dropped.
func decodeArgs(name string, schema *protocol.JSONSchema, raw json.RawMessage, out any) error {
	args := map[string]any{}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return &ValidationError{Tool: name, Reason: "arguments must be a JSON object"}
		}
	}

	clean, err := validate(name, schema, args)
	if err != nil {
		return err
	}

	buf, err := json.Marshal(clean)
	if err != nil {
		return &ValidationError{Tool: name, Reason: err.Error()}
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return &ValidationError{Tool: name, Reason: err.Error()}
	}
	return nil
}

func validate(name string, schema *protocol.JSONSchema, args map[string]any) (map[string]any, error) {
	if schema == nil {
		return map[string]any{}, nil
	}

	for _, field := range schema.Required {
		if v, ok := args[field]; !ok || v == nil {
			return nil, &ValidationError{Tool: name, Field: field, Reason: "is required"}
		}
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clean := make(map[string]any, len(args))
	for _, k := range keys {
		prop, ok := schema.Properties[k]
		if !ok || args[k] == nil {
			continue
		}
		v, err := coerce(prop, args[k])
		if err != nil {
			return nil, &ValidationError{Tool: name, Field: k, Reason: err.Error()}
		}
		clean[k] = v
	}
	return clean, nil
}

// coerce type-checks v and converts whole numbers declared as integers to int64.
func coerce(prop protocol.JSONSchema, v any) (any, error) {
	switch prop.Type {
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
			return nil, fmt.Errorf("must be one of %v", prop.Enum)
		}
		return s, nil
	case "number":
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("must be a number")
		}
		if _, err := n.Float64(); err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		return n, nil
	case "integer":
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("must be an integer")
		}
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return nil, fmt.Errorf("must be an integer")
		}
		return int64(f), nil
	case "boolean":
		if _, ok := v.(bool); !ok {
			return nil, fmt.Errorf("must be a boolean")
		}
		return v, nil
	case "object":
		if _, ok := v.(map[string]any); !ok {
			return nil, fmt.Errorf("must be an object")
		}
		return v, nil
	case "array":
		if _, ok := v.([]any); !ok {
			return nil, fmt.Errorf("must be an array")
		}
		return v, nil
	default:
		return v, nil
	}
}

func nonNegative(name, field string, v *int) error {
	if v != nil && *v < 0 {
		return &ValidationError{Tool: name, Field: field, Reason: "must not be negative"}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
