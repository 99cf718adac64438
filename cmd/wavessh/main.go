// Command wavessh serves the wave field over SSH. Every session gets its
// own field, driven by that session's mouse.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/olivier-w/wavefield/internal/config"
	"github.com/olivier-w/wavefield/internal/ui"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/wavefield_ed25519"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := config.Defaults()
	if err != nil {
		return err
	}
	opts.Scale = 0.25

	fs := flag.NewFlagSet("wavessh", flag.ContinueOnError)
	opts.Register(fs)
	host := fs.String("host", config.GetEnv(config.EnvSSHHost, defaultHost), "listen host")
	port := fs.String("port", config.GetEnv(config.EnvSSHPort, defaultPort), "listen port")
	hostKeyPath := fs.String("host-key", config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath), "host key path, created if missing")
	if err := opts.Parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := config.NewLogger(os.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}
	// Fail on bad flags before accepting anyone.
	if _, err := ui.SettingsFrom(opts, logger); err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(*host, *port)),
		wish.WithHostKeyPath(*hostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(sessionHandler(opts, logger)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "host", *host, "port", *port, "preset", opts.PresetName())
	serveErr := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-done:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionHandler builds a fresh model per session, coloured for the
// client's terminal.
func sessionHandler(opts config.Options, logger *log.Logger) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		settings, err := ui.SettingsFrom(opts, logger.With("user", sess.User()))
		if err != nil {
			wish.Fatalln(sess, "Error:", err)
			return nil, nil
		}
		settings.Term = pty.Term

		model, err := ui.New(settings)
		if err != nil {
			wish.Fatalln(sess, "Error:", err)
			return nil, nil
		}
		logger.Info("session started", "user", sess.User(), "term", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))
		return model, []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
			tea.WithReportFocus(),
		}
	}
}
