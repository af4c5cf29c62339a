package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the top-level shape of every successful command result.
type Envelope struct {
	Data  any      `json:"data"`
	Hints []string `json:"_hints,omitempty"`
}

// Texter is implemented by payloads with a human-readable rendering.
type Texter interface {
	Text() string
}

// Validate reports whether name is a format Write understands.
func Validate(name string) error {
	switch name {
	case "", "json", "text":
		return nil
	default:
		return fmt.Errorf("unknown format: %s (want json or text)", name)
	}
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return Validate(format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders v for people. Envelopes are unwrapped and hints go on
// their own lines; payloads without a Text method fall back to indented JSON.
func WriteText(w io.Writer, v any) error {
	var hints []string
	switch env := v.(type) {
	case Envelope:
		v, hints = env.Data, env.Hints
	case *Envelope:
		v, hints = env.Data, env.Hints
	}

	if t, ok := v.(Texter); ok {
		if _, err := fmt.Fprintln(w, t.Text()); err != nil {
			return err
		}
	} else if err := WriteJSON(w, v, true); err != nil {
		return err
	}

	for _, h := range hints {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	return nil
}
