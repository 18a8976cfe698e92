package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// ErrUnknownTool is returned for calls naming a tool that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Tool defines the behavior of a single MCP tool.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error)
}

// Toolbox stores and dispatches tools by name. Tools are listed in registration order.
type Toolbox struct {
	order  []string
	tools  map[string]Tool
	logger *logrus.Entry
}

// NewToolbox constructs a toolbox with the provided tools.
func NewToolbox(tools ...Tool) *Toolbox {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	tb := &Toolbox{
		tools:  make(map[string]Tool, len(tools)),
		logger: discard.WithField("component", "toolbox"),
	}
	for _, t := range tools {
		name := t.Descriptor().Name
		if _, dup := tb.tools[name]; !dup {
			tb.order = append(tb.order, name)
		}
		tb.tools[name] = t
	}
	return tb
}

// WithLogger sets the logger used for call tracing.
func (tb *Toolbox) WithLogger(logger *logrus.Entry) *Toolbox {
	if logger != nil {
		tb.logger = logger
	}
	return tb
}

// Len reports the number of registered tools.
func (tb *Toolbox) Len() int {
	return len(tb.order)
}

// Describe returns all tool descriptors.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.order))
	for _, name := range tb.order {
		list = append(list, tb.tools[name].Descriptor())
	}
	return list
}

// Call invokes a named tool. Every failure, including an unknown name or a panic in
// the tool, comes back as an error CallResult.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) protocol.CallResult {
	log := tb.logger.WithFields(logrus.Fields{"tool": name, "request_id": uuid.NewString()})

	tool, ok := tb.tools[name]
	if !ok {
		log.Warn("unknown tool")
		return protocol.ErrorResult(fmt.Errorf("%w: %s", ErrUnknownTool, name))
	}

	start := time.Now()
	result, err := invoke(ctx, tool, args)
	log = log.WithField("elapsed", time.Since(start))
	if err != nil {
		log.WithError(err).Warn("tool call failed")
		return protocol.ErrorResult(err)
	}
	log.Info("tool call")
	return result
}

func invoke(ctx context.Context, tool Tool, args json.RawMessage) (result protocol.CallResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return tool.Invoke(ctx, args)
}
