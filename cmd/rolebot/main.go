// Command rolebot runs a composed chat bot against a websocket line gateway.
// The configuration file picks the bot's nick, the gateway URL and the units
// composed into the bot type; every built-in unit is also registered for
// runtime loading via the loader unit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sveinns/rolebot"
	"github.com/sveinns/rolebot/config"
	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/logging"
	"github.com/sveinns/rolebot/role"
	"github.com/sveinns/rolebot/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "rolebot",
		Short:         "Composable behavior-unit chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML configuration")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Gateway == "" {
		return fmt.Errorf("no gateway configured")
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  cfg.LogLevel(),
		Format: cfg.Logging.Format,
	})

	registry := role.NewRegistry()
	builtins := []*core.Unit{
		role.Karma(),
		role.Oping(cfg.Trusted...),
		role.PluginLoader(registry),
		role.Addressed(cfg.Nick),
		role.Greeter(),
	}
	for _, u := range builtins {
		if err := registry.Register(u); err != nil {
			return err
		}
	}

	var units []*core.Unit
	for _, name := range cfg.Units {
		u, ok := registry.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown unit %q (have %v)", name, registry.Names())
		}
		units = append(units, u)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, err := transport.DialWebSocket(ctx, cfg.Gateway, func(o *transport.WebSocketOptions) {
		o.Logger = logger.WithComponent("transport")
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.Gateway, err)
	}
	defer ws.Close()

	b, err := rolebot.New(cfg.Nick,
		rolebot.WithUnits(units...),
		rolebot.WithTransport(ws),
		rolebot.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("Bot running", "nick", cfg.Nick, "gateway", cfg.Gateway, "units", cfg.Units)
	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
