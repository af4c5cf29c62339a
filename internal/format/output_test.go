package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type greeting struct {
	Name string `json:"name"`
}

func (g greeting) Text() string { return "hello " + g.Name }

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: greeting{Name: "alice"}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	data, _ := got["data"].(map[string]any)
	if data["name"] != "alice" {
		t.Fatalf("unexpected envelope: %#v", got)
	}
	if _, ok := got["_hints"]; ok {
		t.Fatalf("expected empty hints to be omitted: %s", buf.String())
	}
}

func TestWrite_PrettyJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: 1}, "", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"data\": 1") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestWrite_TextUsesTexterAndHints(t *testing.T) {
	var buf bytes.Buffer
	env := Envelope{Data: greeting{Name: "bob"}, Hints: []string{"try: todos list"}}
	if err := Write(&buf, env, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), "hello bob\ntry: todos list\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrite_TextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: map[string]int{"deleted": 2}}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"deleted": 2`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestValidate(t *testing.T) {
	for _, name := range []string{"", "json", "text"} {
		if err := Validate(name); err != nil {
			t.Fatalf("Validate(%q): %v", name, err)
		}
	}
	if err := Validate("yaml"); err == nil {
		t.Fatalf("expected yaml to be rejected")
	}
}
