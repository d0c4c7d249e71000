package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Config captures the settings for serving progress pages and data.
type Config struct {
	Addr    string
	Handler Dependencies
	Logger  logrus.FieldLogger
	// Ready receives the bound address once the listener is open.
	Ready func(addr string)
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("server: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("server: addr is required")
	}
	if cfg.Handler.Logger == nil {
		cfg.Handler.Logger = cfg.Logger
	}
	handler, err := NewHandler(cfg.Handler)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	if cfg.Ready != nil {
		cfg.Ready(listener.Addr().String())
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
