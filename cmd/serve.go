package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dylanratti/grain/internal/chat"
	"github.com/dylanratti/grain/internal/config"
	"github.com/dylanratti/grain/internal/proxy"
)

var (
	flagServeAddr    string
	flagServeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local chat proxy so a browser dashboard never holds the key",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().DurationVar(&flagServeTimeout, "timeout", 0, "Upstream request timeout (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	addr := cfg.Serve.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	timeout := time.Duration(cfg.Serve.TimeoutSecs) * time.Second
	if flagServeTimeout > 0 {
		timeout = flagServeTimeout
	}

	// A missing credential is not fatal. The proxy still serves health and
	// status; chat requests report the configuration gap.
	var asker proxy.Asker
	client, err := chat.NewClient(cfg)
	switch {
	case err == nil:
		asker = client
	case errors.Is(err, chat.ErrNoCredential):
		fmt.Fprintln(os.Stderr, "  No completion API key configured; /api/chat will return 503.")
	default:
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if flagQuiet {
		log = zerolog.Nop()
	}

	srv := proxy.New(proxy.Config{
		Addr:    addr,
		Timeout: timeout,
		Model:   cfg.Chat.Model,
	}, asker, log)

	fmt.Printf("  grain proxy listening on http://%s\n", addr)
	fmt.Printf("  Status: http://%s/api/status\n", addr)
	fmt.Printf("  Stop with Ctrl-C\n")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
