package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/config"
	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/log"
)

type GlobalOptions struct {
	EnvFile string
	Debug   bool

	cfg *config.Config
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.EnvFile, "env-file", "e", o.EnvFile, "Path to an env file (default .env when present)")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "Log every Device42 request and response")
}

// Complete loads the configuration and installs the global logger.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.New(o.EnvFile)
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if o.Debug {
		cfg.Log.Debug = true
	}
	o.cfg = cfg

	logger := log.InitFileLog(log.ParseLevel(cfg.Log.Level, cfg.Log.Debug), cfg.Log.File)
	zap.ReplaceGlobals(logger)
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	return o.cfg.Validate()
}

func (o *GlobalOptions) Config() *config.Config {
	return o.cfg
}
