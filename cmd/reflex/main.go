// reflex - baseball reflex test in the terminal
//
// Pitches fly at the batter at increasing speed; swing when the ball
// reaches the bat.
//
// Controls:
//
//	Space / click  - Swing
//	S / Enter      - Start (or play again)
//	R              - Back to the title screen
//	Esc / Ctrl+C   - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/reflex/pkg/config"
	"github.com/taigrr/reflex/pkg/game"
)

var version = "dev"

// options are the command-line flags. Flags that were not set leave the
// config file value alone.
type options struct {
	configPath string
	variant    string
	fps        int
	batModel   string
	logFile    string
	logLevel   string
	noShake    bool
	bot        bool
	framePath  string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "reflex",
		Short: "Baseball reflex test in your terminal",
		Long: "Ten pitches, each faster than the last. Swing with space or a mouse click " +
			"when the ball reaches the bat.",
		Example: "reflex\nreflex --variant cooldown\nreflex --bot --frame last.png",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setup, err := loadSetup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = setup.log.Sync() }()

			if opts.bot {
				return runBot(cmd.Context(), cmd.OutOrStdout(), setup, opts.framePath)
			}
			return runInteractive(cmd.Context(), setup)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml or .yaml), defaults to $"+config.EnvPath)
	f.StringVar(&opts.variant, "variant", "", "game variant: scoring or cooldown")
	f.IntVar(&opts.fps, "fps", 60, "target frames per second")
	f.StringVar(&opts.batModel, "bat-model", "", "replace the bat with a .glb model")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.BoolVar(&opts.noShake, "no-shake", false, "disable camera shake on hits")
	f.BoolVar(&opts.bot, "bot", false, "play one session headless with the auto-swing bot and print the result")
	f.StringVar(&opts.framePath, "frame", "", "with --bot, save the last frame as a PNG")

	return cmd
}

// setup is everything a run needs after flags and config are merged.
type setup struct {
	file    *config.Config
	game    game.Config
	variant game.Variant
	log     *zap.Logger
}

func loadSetup(cmd *cobra.Command, opts options) (*setup, error) {
	cfg, err := config.Load(config.Path(opts.configPath))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Game.Variant = opts.variant
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = opts.fps
	}
	if flags.Changed("bat-model") {
		cfg.Display.BatModel = opts.batModel
	}
	if flags.Changed("no-shake") {
		cfg.Display.Shake = !opts.noShake
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	variant, err := game.ParseVariant(cfg.Game.Variant)
	if err != nil {
		return nil, err
	}
	gameCfg, err := cfg.Game.Resolve()
	if err != nil {
		return nil, err
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log.Info("config loaded",
		zap.String("variant", variant.String()),
		zap.Int("fps", cfg.Display.FPS),
		zap.String("bat_model", cfg.Display.BatModel),
	)

	return &setup{file: cfg, game: gameCfg, variant: variant, log: log}, nil
}
