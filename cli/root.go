// Package cli is the arraysum command tree.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"slava0135/arraysum/config"
	"slava0135/arraysum/logger"
)

type app struct {
	configPath string
	logLevel   string
	debug      bool

	cfg config.Config
	log zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: zerolog.Nop()}
	root := &cobra.Command{
		Use:          "arraysum",
		Short:        "Explore the array summation exercise symbolically",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.debug, "debug", false, "debug logging")

	root.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newKtestCmd(a),
		newReplayCmd(a),
		newGenCmd(a),
		newInspectCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = a.debug
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
