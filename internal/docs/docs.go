// Package docs holds the help topics shown by `todos docs`.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics lists the available topic names, sorted.
func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, p := range entries {
		topic := strings.TrimSuffix(path.Base(p), ".md")
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown body of topic (case-insensitive).
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, `/\`) {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

var (
	renderersMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle is avoided: it queries the
	// terminal, which blocks when output is piped.
	renderers = map[string]*glamour.TermRenderer{}
)

// Render formats md for a terminal, wrapping at width columns.
func Render(md string, width int, style string) (string, error) {
	md = strings.TrimSpace(md)
	if md == "" {
		return "", nil
	}
	if width < 20 {
		width = 20
	}

	key := fmt.Sprintf("%s:%d", style, width)
	renderersMu.Lock()
	r := renderers[key]
	if r == nil {
		opts := []glamour.TermRendererOption{
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		}
		if style == styles.NoTTYStyle || style == styles.AsciiStyle {
			opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
		}
		rr, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			renderersMu.Unlock()
			return "", fmt.Errorf("markdown renderer %q: %w", style, err)
		}
		renderers[key] = rr
		r = rr
	}
	renderersMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Style picks the glamour style for rendered topics.
//
// Priority:
// 1) TODOS_MD_STYLE (any glamour standard style name)
// 2) TODOS_TUI_THEME=light|dark
// 3) notty, which prints no colors
func Style() string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("TODOS_MD_STYLE"))); v != "" {
		if _, ok := styles.DefaultStyles[v]; ok {
			return v
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODOS_TUI_THEME"))) {
	case "light":
		return styles.LightStyle
	case "dark":
		return styles.DarkStyle
	}
	return styles.NoTTYStyle
}
