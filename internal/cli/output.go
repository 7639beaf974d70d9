package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OutputFormatter handles structured vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard envelope for structured CLI output.
type CLIResponse struct {
	Status  string      `json:"status" yaml:"status"`                         // "ok" or "error"
	Data    interface{} `json:"data,omitempty" yaml:"data,omitempty"`         // success payload
	Error   *CLIError   `json:"error,omitempty" yaml:"error,omitempty"`       // error details
	TraceID string      `json:"trace_id,omitempty" yaml:"trace_id,omitempty"` // run correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Structured reports whether output should go through Success rather
// than a command's text renderer.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "yaml"
}

// Success emits a successful result in the configured structured
// format.
func (f *OutputFormatter) Success(data interface{}, traceID string) error {
	return f.encode(CLIResponse{Status: "ok", Data: data, TraceID: traceID})
}

// Error emits an error in the configured structured format.
func (f *OutputFormatter) Error(code, message string) error {
	return f.encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message}})
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		return yaml.NewEncoder(f.Writer).Encode(resp)
	default:
		return fmt.Errorf("format %q isn't structured", f.Format)
	}
}
