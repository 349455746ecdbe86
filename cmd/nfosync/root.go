package main

import (
	"os"

	"github.com/mirrorops/nfosync/pkg/config"
	"github.com/mirrorops/nfosync/pkg/operation"
	"github.com/mirrorops/nfosync/pkg/status"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	dryRun     bool
)

// newRootCmd builds the nfosync root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nfosync [config-file]",
		Short:   "Mirror media-library metadata folders",
		Version: version,
		Long: `nfosync copies scraped metadata (NFO descriptors, posters, subtitles)
from media library folders into a mirrored folder tree, filtering out
the video payloads by extension and size.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "nfosync.json", "config file path (.json, .yaml, .yml or .hcl)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "walk and report without copying anything")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) == 1 {
		path = args[0]
	}

	// Until the config is loaded the level gate is unknown; start at
	// info so load-time debug lines stay quiet unless --debug asks.
	bootLevel := zerolog.InfoLevel
	if debug {
		bootLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(bootLevel).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(ctx, path)
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println("Invalid configuration")
		pterm.Error.Println(err)
		return errors.Errorf("loading config: %w", err)
	}

	level := cfg.Level()
	if debug {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)
	ctx = logger.WithContext(ctx)

	logger.Info().Str("config", path).Stringer("run", cfg).Bool("dry_run", dryRun).Msg("starting sync")

	statusMgr := status.NewManager(&logger, status.NewDefaultFileFormatter())

	op, err := operation.NewSyncOperation(operation.Options{
		Config:    cfg,
		StatusMgr: statusMgr,
		Logger:    &logger,
		DryRun:    dryRun,
	})
	if err != nil {
		return errors.Errorf("creating sync operation: %w", err)
	}

	runner := operation.NewRunner(&logger)
	if err := runner.Run(ctx, op); err != nil {
		return errors.Errorf("running sync operation: %w", err)
	}

	statusMgr.PrintSummary()
	return nil
}
