package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/logging"
	"github.com/milk9111/temple/save"
	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flag values.
var (
	flagLoad         uint32
	flagFPS          bool
	flagEditor       bool
	flagSave         string
	flagWatch        bool
	flagProfile      bool
	flagPhysicsDebug bool
)

var (
	v      = config.NewViper()
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "temple",
	Short: "Temple is a 2D platformer",
	Long: `Temple plays the levels under <root>/assets.

Without --load the game starts at the first unfinished level of the
level order in game.toml. With --load it starts at the given level id.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(v.GetBool(config.KeyVerbose))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagProfile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		}
		opts := gameOptions{
			showFPS:      flagFPS,
			editor:       flagEditor,
			saveName:     flagSave,
			watch:        flagWatch,
			physicsDebug: flagPhysicsDebug,
		}
		if cmd.Flags().Changed("load") {
			id := levels.ID(flagLoad)
			opts.load = &id
		}
		return runGame(cmd.Context(), config.LoadSettings(v), opts)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check game.toml and every level file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.OutOrStdout(), afero.NewOsFs(), config.LoadSettings(v), flagEditor)
	},
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save files and their progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSaves(cmd.Context(), cmd.OutOrStdout(), afero.NewOsFs(), config.LoadSettings(v), logger)
	},
}

func init() {
	rootCmd.PersistentFlags().String("root", ".", "game root containing assets/ and saves/")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagEditor, "editor", false, "edit mode: missing level files load as empty levels")
	mustBind(config.KeyRoot, "root")
	mustBind(config.KeyVerbose, "verbose")

	rootCmd.Flags().Uint32VarP(&flagLoad, "load", "l", 0, "start at this level id")
	rootCmd.Flags().BoolVar(&flagFPS, "fps", false, "show the FPS counter")
	rootCmd.Flags().StringVar(&flagSave, "save", "", "play on this save, creating it when missing")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the current level when its files change")
	rootCmd.Flags().BoolVar(&flagProfile, "profile", false, "write a CPU profile to the working directory")
	rootCmd.Flags().BoolVar(&flagPhysicsDebug, "physics-debug", false, "draw physics shapes")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(savesCmd)
}

// mustBind lets a persistent flag override the viper setting key.
func mustBind(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

func runGame(ctx context.Context, settings config.Settings, opts gameOptions) error {
	game, err := NewGame(ctx, afero.NewOsFs(), settings, opts, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle(game.Title())
	return ebiten.RunGame(game)
}

// runVerify reports warnings for levels that cannot be played and fails
// when any file does not decode.
func runVerify(out io.Writer, fs afero.Fs, settings config.Settings, editMode bool) error {
	store := levels.NewStore(fs, settings.Root)
	if err := levels.VerifyFiles(store); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	warnings, err := store.Verify(editMode)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	listed, err := store.Manifests()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Fprintf(out, "%d levels ok\n", len(listed))
	return nil
}

// runSaves prints one line per save with its cleared exits out of the
// exits defined across all levels.
func runSaves(ctx context.Context, out io.Writer, fs afero.Fs, settings config.Settings, log *zap.Logger) error {
	store, err := save.Open(fs, settings, log)
	if err != nil {
		return err
	}
	defer store.Close()

	saves, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	if len(saves) == 0 {
		fmt.Fprintln(out, "no saves")
		return nil
	}

	exits, err := levels.NewStore(fs, settings.Root).CountExits()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("count exits: %w", err)
	}
	for _, gs := range saves {
		fmt.Fprintf(out, "%s\t%s\t%d/%d exits\n", gs.Name, gs.ID, gs.NumClearedExits(), exits)
	}
	return nil
}
