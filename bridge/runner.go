package bridge

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcp-obo/config"
)

// Run parses args, loads configuration and runs the bridge until the user exits.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()
	cfg, err := config.Load(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	options.Apply(cfg)
	cfg.Init()
	if err = cfg.ValidateClient(); err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	provider, err := NewProvider(ctx, &cfg.Client)
	if err != nil {
		return err
	}
	service, err := New(ctx, &cfg.Client, provider, WithLogger(logger))
	if err != nil {
		return err
	}
	return service.Run(ctx)
}
