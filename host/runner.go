package host

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcp-obo/config"
)

// Run parses args, loads configuration and serves until interrupted.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	cfg, err := config.Load(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	options.Apply(cfg)
	cfg.Init()
	if err = cfg.ValidateServer(); err != nil {
		return err
	}
	service, err := New(&cfg.Server, WithLogger(cfg.NewLogger(os.Stderr)))
	if err != nil {
		return err
	}
	return service.ListenAndServe(ctx)
}
