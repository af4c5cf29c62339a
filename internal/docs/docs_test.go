package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	want := []string{"config", "playground", "scripting"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Config ")
	if !ok || !strings.Contains(body, "config.toml") {
		t.Fatalf("expected config topic, got ok=%v", ok)
	}
	for _, topic := range []string{"", "nope", "../docs"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("expected %q to be unknown", topic)
		}
	}
}

func TestRender_PlainStyleDropsMarkup(t *testing.T) {
	body, _ := Get("playground")
	out, err := Render(body, 60, "notty")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Local playground") || !strings.Contains(out, "todos serve") {
		t.Fatalf("expected rendered topic, got:\n%s", out)
	}
	if strings.Contains(out, "```") {
		t.Fatalf("expected code fences to be rendered, got:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes in notty style, got %q", out)
	}
}

func TestRender_UnknownStyle(t *testing.T) {
	if _, err := Render("# hi", 40, "no-such-style"); err == nil {
		t.Fatalf("expected an error for an unknown style")
	}
}

func TestStyle(t *testing.T) {
	t.Setenv("TODOS_MD_STYLE", "")
	t.Setenv("TODOS_TUI_THEME", "")
	if got := Style(); got != "notty" {
		t.Fatalf("expected notty by default, got %q", got)
	}
	t.Setenv("TODOS_TUI_THEME", "light")
	if got := Style(); got != "light" {
		t.Fatalf("expected light from theme, got %q", got)
	}
	t.Setenv("TODOS_MD_STYLE", "dracula")
	if got := Style(); got != "dracula" {
		t.Fatalf("expected explicit style to win, got %q", got)
	}
}
