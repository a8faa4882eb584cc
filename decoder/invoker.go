package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeMethod is the method every decoder module exposes.
const DecodeMethod = "decode"

var (
	// ErrModuleFetch marks failures to reach the engine or to load the decoder module.
	ErrModuleFetch = errors.New("decoder module fetch failed")
	// ErrEngineStatus marks a non-success status reported by the engine: malformed module,
	// runtime trap, timeout.
	ErrEngineStatus = errors.New("decoder engine reported failure")
)

// Param is a call argument with its value normalized to text.
type Param struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Call is the txData argument passed to a decoder's decode method.
type Call struct {
	To         string  `json:"to"`
	Method     string  `json:"method"`
	Parameters []Param `json:"parameters"`
}

// Invoker runs a decoder module against a call and returns its description. A single attempt
// is made; failures are returned as *DecodeInvocationError.
type Invoker interface {
	Invoke(ctx context.Context, ref string, call Call) (string, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, ref string, call Call) (string, error)

func (f InvokerFunc) Invoke(ctx context.Context, ref string, call Call) (string, error) {
	return f(ctx, ref, call)
}

// DecodeInvocationError describes a failed decoder invocation.
type DecodeInvocationError struct {
	Ref    string
	Reason string
	Err    error
}

func (e *DecodeInvocationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invoking decoder %s: %v", e.Ref, e.Err)
	}

	return fmt.Sprintf("invoking decoder %s: %v: %s", e.Ref, e.Err, e.Reason)
}

func (e *DecodeInvocationError) Unwrap() error { return e.Err }

// NormalizeValue turns a raw JSON parameter value into the text passed to decoders. JSON
// strings pass through unquoted; anything else is compacted to its canonical JSON text.
// Key order of objects is preserved. An absent value yields "".
func NormalizeValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}

	return buf.String()
}
