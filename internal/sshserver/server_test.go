package sshserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gliderssh "github.com/gliderlabs/ssh"
	"github.com/muesli/termenv"
	"golang.org/x/crypto/ssh"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/ui"
)

func TestEnsureHostKeyGeneratesAndReuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_ed25519")
	first, err := EnsureHostKey(path)
	if err != nil {
		t.Fatalf("EnsureHostKey: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
	if first.PublicKey().Type() != ssh.KeyAlgoED25519 {
		t.Fatalf("key type = %s", first.PublicKey().Type())
	}

	second, err := EnsureHostKey(path)
	if err != nil {
		t.Fatalf("EnsureHostKey reuse: %v", err)
	}
	if !bytes.Equal(first.PublicKey().Marshal(), second.PublicKey().Marshal()) {
		t.Fatalf("host key regenerated")
	}
}

func TestEnsureHostKeyErrors(t *testing.T) {
	if _, err := EnsureHostKey("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	path := filepath.Join(t.TempDir(), "garbage")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureHostKey(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWriteNewKeyFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	if err := writeNewKeyFile(path, []byte("first")); err != nil {
		t.Fatalf("writeNewKeyFile: %v", err)
	}
	err := writeNewKeyFile(path, []byte("second"))
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("err = %v, want ErrExist", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Fatalf("key overwritten: %q", data)
	}
}

func TestSessionRendererProfile(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		environ []string
		want    termenv.Profile
	}{
		{name: "truecolor", term: "xterm-256color", environ: []string{"COLORTERM=truecolor"}, want: termenv.TrueColor},
		{name: "256 colours", term: "xterm-256color", want: termenv.ANSI256},
		{name: "xterm", term: "xterm", want: termenv.ANSI},
		{name: "no color", term: "xterm-256color", environ: []string{"NO_COLOR=1"}, want: termenv.Ascii},
		{name: "unknown", term: "", want: termenv.Ascii},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sessionRenderer(io.Discard, tt.term, tt.environ)
			if got := r.ColorProfile(); got != tt.want {
				t.Fatalf("profile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionEnvLookup(t *testing.T) {
	env := sessionEnv{term: "xterm-256color", environ: []string{"TERM=dumb", "LANG=C.UTF-8", "EMPTY="}}
	if got := env.Getenv("TERM"); got != "xterm-256color" {
		t.Fatalf("TERM = %q", got)
	}
	if got := env.Getenv("LANG"); got != "C.UTF-8" {
		t.Fatalf("LANG = %q", got)
	}
	if got := env.Getenv("LAN"); got != "" {
		t.Fatalf("prefix matched: %q", got)
	}
	if got := env.Environ(); len(got) != 4 || got[0] != "TERM=xterm-256color" {
		t.Fatalf("Environ = %v", got)
	}
}

func TestForwardResizes(t *testing.T) {
	winCh := make(chan gliderssh.Window, 2)
	winCh <- gliderssh.Window{Width: 100, Height: 30}
	winCh <- gliderssh.Window{Width: 60, Height: 20}
	close(winCh)

	var got []tea.Msg
	forwardResizes(context.Background(), gliderssh.Window{Width: 80, Height: 24}, winCh, func(msg tea.Msg) {
		got = append(got, msg)
	})
	want := []tea.WindowSizeMsg{{Width: 80, Height: 24}, {Width: 100, Height: 30}, {Width: 60, Height: 20}}
	if len(got) != len(want) {
		t.Fatalf("messages = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForwardResizesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	sent := 0
	go func() {
		defer close(done)
		forwardResizes(ctx, gliderssh.Window{Width: 80, Height: 24}, make(chan gliderssh.Window), func(tea.Msg) { sent++ })
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("forwardResizes did not return")
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want the initial size only", sent)
	}
}

func startServer(t *testing.T, state func() ui.State) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
		Listener:    ln,
		State:       state,
		logger:      discardLogger(),
	}
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("ListenAndServe: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("server did not stop")
		}
	})
	return ln.Addr().String()
}

func dial(t *testing.T, addr string) *ssh.Client {
	t.Helper()
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "guest",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func discardLogger() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:    pslog.ModeStructured,
		NoColor: true,
	})
}

func TestSessionWithoutPtyRejected(t *testing.T) {
	addr := startServer(t, func() ui.State { return ui.State{} })
	sess, err := dial(t, addr).NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer sess.Close()
	var out bytes.Buffer
	sess.Stdout = &out
	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	err = sess.Wait()
	var exitErr *ssh.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitStatus() != 1 {
		t.Fatalf("wait = %v, want exit status 1", err)
	}
	if out.String() != "pty required\n" {
		t.Fatalf("output = %q", out.String())
	}
}

// lockedBuffer collects session output read on another goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPtySessionRunsPage(t *testing.T) {
	v, ok := content.Builtin("noir")
	if !ok {
		t.Fatal("no noir variant")
	}
	site, err := content.Assemble(v, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	addr := startServer(t, func() ui.State { return ui.State{Site: site} })

	sess, err := dial(t, addr).NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer sess.Close()
	if err := sess.RequestPty("xterm", 24, 80, ssh.TerminalModes{}); err != nil {
		t.Fatalf("pty: %v", err)
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	out := &lockedBuffer{}
	go func() { _, _ = io.Copy(out, stdout) }()

	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), v.Monogram) {
		if time.Now().After(deadline) {
			t.Fatalf("monogram never drawn: %q", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := sess.WindowChange(30, 100); err != nil {
		t.Fatalf("window change: %v", err)
	}
	if _, err := io.WriteString(stdin, "q"); err != nil {
		t.Fatalf("write: %v", err)
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- sess.Wait() }()
	select {
	case err := <-waitErr:
		if err != nil {
			t.Fatalf("wait = %v, want exit status 0", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session did not exit after q")
	}
}
