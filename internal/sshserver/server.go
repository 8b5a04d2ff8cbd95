// Package sshserver serves the terminal page to SSH clients.
package sshserver

import (
	"context"
	"io"
	"net"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gliderssh "github.com/gliderlabs/ssh"
	"github.com/muesli/termenv"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/ui"
)

// Server runs one page program per SSH session. Any client may connect;
// the page is public.
type Server struct {
	Addr        string
	HostKeyPath string
	Listener    net.Listener
	// State returns the initial state for a new session.
	State  func() ui.State
	logger pslog.Logger
}

// ListenAndServe starts the SSH server and shuts down on context cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:    s.Addr,
		Handler: s.handleSession,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()
	addr := s.Addr
	if s.Listener != nil {
		addr = s.Listener.Addr().String()
	}
	s.logger.Info("ssh listening", "addr", addr)

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleSession(sess gliderssh.Session) {
	log := s.logger.With("remote", sess.RemoteAddr().String())
	if id := sess.Context().SessionID(); id != "" {
		log = log.With("ssh_session", id)
	}
	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected", "reason", "pty required")
		_, _ = io.WriteString(sess, "pty required\n")
		_ = sess.Exit(1)
		return
	}

	ctx := pslog.ContextWithLogger(sess.Context(), log)
	state := s.State()
	state.Logger = log
	state.Renderer = sessionRenderer(sess, pty.Term, sess.Environ())
	model := ui.NewModel(state)
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	go forwardResizes(ctx, pty.Window, winCh, program.Send)

	log.Info("ssh session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
	if _, err := program.Run(); err != nil {
		log.Warn("ssh session ended", "err", err)
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session ended")
	_ = sess.Exit(0)
}

// forwardResizes reports the initial window and every window change as a
// resize message until winCh closes or ctx ends.
func forwardResizes(ctx context.Context, initial gliderssh.Window, winCh <-chan gliderssh.Window, send func(tea.Msg)) {
	send(tea.WindowSizeMsg{Width: initial.Width, Height: initial.Height})
	for {
		select {
		case <-ctx.Done():
			return
		case win, ok := <-winCh:
			if !ok {
				return
			}
			send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}
}

// sessionRenderer styles output for the client terminal described by the
// pty request and the session environment, not the server's stdout.
func sessionRenderer(w io.Writer, term string, environ []string) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w,
		termenv.WithUnsafe(),
		termenv.WithEnvironment(sessionEnv{term: term, environ: environ}),
	)
}

type sessionEnv struct {
	term    string
	environ []string
}

func (e sessionEnv) Environ() []string {
	out := make([]string, 0, len(e.environ)+1)
	if e.term != "" {
		out = append(out, "TERM="+e.term)
	}
	return append(out, e.environ...)
}

func (e sessionEnv) Getenv(key string) string {
	if key == "TERM" && e.term != "" {
		return e.term
	}
	prefix := key + "="
	for _, kv := range e.environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}
