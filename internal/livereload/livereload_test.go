package livereload

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/scholarsite/internal/logging"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"before body", "<html><body><p>x</p></body></html>", "<html><body><p>x</p>" + Script + "</body></html>"},
		{"upper case", "<BODY>x</BODY>", "<BODY>x" + Script + "</BODY>"},
		{"no body", "<p>x</p>", "<p>x</p>" + Script},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Inject([]byte(tt.in))); got != tt.want {
				t.Errorf("Inject = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScriptConnectsToHub(t *testing.T) {
	if !strings.Contains(Script, `"`+Path+`"`) {
		t.Errorf("script does not reference %s: %s", Path, Script)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 2 })

	if n := hub.Broadcast(ReloadMessage); n != 2 {
		t.Errorf("Broadcast reached %d clients, want 2", n)
	}
	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(msg) != ReloadMessage {
			t.Errorf("message = %q", msg)
		}
	}
}

func TestHubForgetsDisconnectedClients(t *testing.T) {
	hub := NewHub(logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestHubClose(t *testing.T) {
	hub := NewHub(logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("clients after Close = %d", hub.Clients())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read error after Close")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan struct{}, 10)
	w, err := Watch(dir, Options{Debounce: 100 * time.Millisecond}, func() { changes <- struct{}{} }, logging.Discard())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	for _, name := range []string{"index.html", "publications.html", "style.css"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case <-changes:
		t.Error("burst produced more than one notification")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan struct{}, 10)
	w, err := Watch(dir, Options{Debounce: 50 * time.Millisecond}, func() { changes <- struct{}{} }, logging.Discard())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	sub := filepath.Join(dir, "data")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no notification for new directory")
	}

	if err := os.WriteFile(filepath.Join(sub, "news.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no notification for file in new directory")
	}
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan struct{}, 10)
	w, err := Watch(dir, Options{Debounce: 50 * time.Millisecond}, func() { changes <- struct{}{} }, logging.Discard())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, ".index.html.swp"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
		t.Error("hidden file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingRoot(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "missing"), Options{Debounce: time.Millisecond}, func() {}, logging.Discard()); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWatcherCustomExcludes(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}
	changes := make(chan struct{}, 10)
	opts := Options{Debounce: 50 * time.Millisecond, Exclude: []string{"drafts", "**/*.bak"}}
	w, err := Watch(dir, opts, func() { changes <- struct{}{} }, logging.Discard())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	for _, name := range []string{"drafts/todo.md", "index.html.bak"} {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-changes:
		t.Error("excluded path triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"index.html", false},
		{"data/site.json", false},
		{".git", true},
		{"data/.site.json.swp", true},
		{"images/photo.jpg~", true},
		{"node_modules", true},
		{"assets/node_modules", true},
	}
	for _, tt := range tests {
		if got := matchesAny(tt.path, DefaultExcludes); got != tt.want {
			t.Errorf("matchesAny(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
