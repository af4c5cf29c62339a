package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todos-cli/internal/model"
	"todos-cli/internal/playground"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

type cliEnv struct {
	t   *testing.T
	dir string
	url string
	svc *playground.Service
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	svc := playground.NewService()
	srv := httptest.NewServer(playground.NewRouter(svc, nil, nil))
	t.Cleanup(srv.Close)
	t.Setenv("TODOS_BASE_URL", "")
	t.Setenv("TODOS_FORMAT", "")
	return &cliEnv{t: t, dir: t.TempDir(), url: srv.URL, svc: svc}
}

func (e *cliEnv) args(args ...string) []string {
	return append([]string{"--config-dir", e.dir, "--base-url", e.url}, args...)
}

// mustRun runs a command and returns the decoded "data" of its JSON envelope.
func (e *cliEnv) mustRun(args ...string) any {
	e.t.Helper()
	stdout, stderr, err := runCLI(e.t, e.args(args...))
	if err != nil {
		e.t.Fatalf("command failed: todos %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		e.t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, stdout, args)
	}
	data, ok := env["data"]
	if !ok {
		e.t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return data
}

func (e *cliEnv) mustFail(args ...string) error {
	e.t.Helper()
	_, _, err := runCLI(e.t, e.args(args...))
	if err == nil {
		e.t.Fatalf("expected todos %v to fail", args)
	}
	return err
}

func labels(data any) []string {
	m, _ := data.(map[string]any)
	xs, _ := m["tasks"].([]any)
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		t, _ := x.(map[string]any)
		l, _ := t["label"].(string)
		if done, _ := t["is_done"].(bool); done {
			l += " (done)"
		}
		out = append(out, l)
	}
	return out
}

func TestCLI_EndToEnd(t *testing.T) {
	e := newCLIEnv(t)

	login := e.mustRun("login", "alice")
	if got := labels(login); len(got) != 0 {
		t.Fatalf("expected new user to have no tasks, got %v", got)
	}
	if _, err := e.svc.GetUser("alice"); err != nil {
		t.Fatalf("expected alice to exist on the server: %v", err)
	}

	who := e.mustRun("whoami").(map[string]any)
	if who["user"] != "alice" || who["loggedIn"] != true {
		t.Fatalf("unexpected whoami: %#v", who)
	}

	e.mustRun("add", "buy", "milk")
	e.mustRun("add", "walk dog")
	done := e.mustRun("done", "2").(map[string]any)
	if done["position"] != float64(2) {
		t.Fatalf("unexpected done result: %#v", done)
	}

	list := e.mustRun("list")
	if got, want := strings.Join(labels(list), ","), "buy milk,walk dog (done)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if pending := list.(map[string]any)["pending"]; pending != float64(1) {
		t.Fatalf("expected 1 pending, got %v", pending)
	}

	e.mustRun("undo", "2")
	e.mustRun("rm", "1")
	list = e.mustRun("list")
	if got, want := strings.Join(labels(list), ","), "walk dog"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	cleared := e.mustRun("clear", "--yes").(map[string]any)
	if cleared["deleted"] != float64(1) {
		t.Fatalf("unexpected clear result: %#v", cleared)
	}
	if n := e.svc.TodoCount(); n != 0 {
		t.Fatalf("expected server to hold no todos, got %d", n)
	}

	e.mustRun("logout")
	who = e.mustRun("whoami").(map[string]any)
	if who["loggedIn"] != false {
		t.Fatalf("expected logged out, got %#v", who)
	}
}

func TestCLI_RequiresLogin(t *testing.T) {
	e := newCLIEnv(t)
	err := e.mustFail("list")
	if _, ok := err.(notLoggedInError); !ok {
		t.Fatalf("expected notLoggedInError, got %T: %v", err, err)
	}
}

func TestCLI_BadPosition(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	e.mustRun("add", "one")

	for _, ref := range []string{"0", "2", "x"} {
		err := e.mustFail("done", ref)
		if _, ok := err.(taskRefError); !ok {
			t.Fatalf("done %s: expected taskRefError, got %T: %v", ref, err, err)
		}
	}
}

func TestCLI_AddRejectsLongLabel(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	e.mustFail("add", strings.Repeat("a", 26))
	if n := e.svc.TodoCount(); n != 0 {
		t.Fatalf("expected no todos, got %d", n)
	}
}

func TestCLI_ClearNeedsYes(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	e.mustRun("add", "one")
	err := e.mustFail("clear")
	if _, ok := err.(confirmRequiredError); !ok {
		t.Fatalf("expected confirmRequiredError, got %T: %v", err, err)
	}
	if n := e.svc.TodoCount(); n != 1 {
		t.Fatalf("expected the task to survive, got %d todos", n)
	}
}

func TestCLI_ImportReplacesList(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	e.mustRun("add", "old")

	path := filepath.Join(t.TempDir(), "tasks.json")
	body := `[{"label":"first"},{"label":"second","is_done":true}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tasks: %v", err)
	}

	list := e.mustRun("import", path)
	if got, want := strings.Join(labels(list), ","), "first,second (done)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	long := filepath.Join(t.TempDir(), "long.json")
	body = `[{"label":"ok"},{"label":"` + strings.Repeat("x", 40) + `"}]`
	if err := os.WriteFile(long, []byte(body), 0o644); err != nil {
		t.Fatalf("write tasks: %v", err)
	}
	e.mustFail("import", long)
	user, err := e.svc.GetUser("alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	if got := len(user.Todos); got != 2 || user.Todos[0].Label != "first" {
		t.Fatalf("expected the rejected import to leave the list alone, got %#v", user.Todos)
	}
}

func TestCLI_UnknownFormatRejectedBeforeAnyChange(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")

	_, _, err := runCLI(t, e.args("--format", "yaml", "add", "buy milk"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if n := e.svc.TodoCount(); n != 0 {
		t.Fatalf("expected no todos to be created, got %d", n)
	}
}

func TestCLI_RefreshSeesServerChanges(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	if _, err := e.svc.AddTodo("alice", model.TaskData{Label: "from elsewhere"}); err != nil {
		t.Fatalf("add todo: %v", err)
	}
	list := e.mustRun("refresh")
	if got := labels(list); len(got) != 1 || got[0] != "from elsewhere" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestCLI_TextFormat(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("login", "alice")
	e.mustRun("add", "one")

	stdout, stderr, err := runCLI(t, e.args("--format", "text", "list"))
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, stderr)
	}
	if got, want := string(stdout), "1. [ ] one\n1 item left\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCLI_ConfigFileBaseURL(t *testing.T) {
	e := newCLIEnv(t)
	cfg := "base_url = \"" + e.url + "\"\n"
	if err := os.WriteFile(filepath.Join(e.dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, stderr, err := runCLI(t, []string{"--config-dir", e.dir, "login", "bob"})
	if err != nil {
		t.Fatalf("login: %v\nstderr:\n%s", err, stderr)
	}
	if _, err := e.svc.GetUser("bob"); err != nil {
		t.Fatalf("expected bob on the configured server: %v", err)
	}
}

func TestCLI_ServeStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd()
	var outBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config-dir", dir, "serve", "--addr", "127.0.0.1:0"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}

	var env map[string]any
	if err := json.Unmarshal(outBuf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, outBuf.String())
	}
	data, _ := env["data"].(map[string]any)
	if addr, _ := data["addr"].(string); !strings.HasPrefix(addr, "127.0.0.1:") {
		t.Fatalf("unexpected addr in %#v", env)
	}
}

func TestCLI_DocsRaw(t *testing.T) {
	e := newCLIEnv(t)
	stdout, _, err := runCLI(t, e.args("docs", "scripting", "--raw"))
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Scripting") {
		t.Fatalf("unexpected docs output:\n%s", stdout)
	}
	topics := e.mustRun("docs").(map[string]any)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
}

func TestCLI_DocsTextIsRendered(t *testing.T) {
	e := newCLIEnv(t)
	t.Setenv("TODOS_MD_STYLE", "")
	t.Setenv("TODOS_TUI_THEME", "")

	stdout, stderr, err := runCLI(t, e.args("--format", "text", "docs", "config"))
	if err != nil {
		t.Fatalf("docs: %v\nstderr:\n%s", err, stderr)
	}
	out := string(stdout)
	if strings.HasPrefix(strings.TrimSpace(out), "{") || strings.Contains(out, `"markdown"`) {
		t.Fatalf("expected rendered text, got JSON:\n%s", out)
	}
	if !strings.Contains(out, "Configuration") || !strings.Contains(out, "TODOS_BASE_URL") {
		t.Fatalf("expected config topic content, got:\n%s", out)
	}

	stdout, _, err = runCLI(t, e.args("--format", "text", "docs"))
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if got := strings.Fields(string(stdout)); len(got) != 3 || got[0] != "config" {
		t.Fatalf("unexpected topic list %q", stdout)
	}
}
