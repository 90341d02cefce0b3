package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/ecs/system"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/prefabs"
	"github.com/milk9111/temple/save"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	baseWidth  = 640
	baseHeight = 360

	tickDT = 1.0 / 60.0
)

type gameOptions struct {
	load         *levels.ID
	showFPS      bool
	editor       bool
	saveName     string
	watch        bool
	physicsDebug bool
}

type Game struct {
	title     string
	world     *ecs.World
	scheduler *ecs.Scheduler

	loader  *assets.Loader
	saves   save.Store
	watcher *levels.Watcher
	logger  *zap.Logger
}

func NewGame(ctx context.Context, fs afero.Fs, settings config.Settings, opts gameOptions, logger *zap.Logger) (*Game, error) {
	gf, err := config.LoadGameFile(fs, settings.Root)
	if err != nil {
		return nil, err
	}
	if err := gf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.GameFilePath, err)
	}

	store := levels.NewStore(fs, settings.Root)
	warnings, err := store.Verify(opts.editor)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		title:  gf.Title,
		world:  ecs.NewWorld(),
		loader: assets.NewLoader(fs, logger),
		logger: logger,
	}

	g.saves, err = save.Open(fs, settings, logger)
	if err != nil {
		return nil, err
	}
	gs, err := openSave(ctx, g.saves, opts.saveName)
	if err != nil {
		g.Close()
		return nil, err
	}

	state := component.GameState{Mode: component.ModeMainMenu}
	switch {
	case opts.editor:
		state.Mode = component.ModeEdit
	case opts.load != nil:
		state = component.GameState{Mode: component.ModeInLevel, Level: *opts.load}
	}
	if _, err := entity.NewResources(g.world, entity.Resources{
		State:    state,
		Save:     gs,
		Settings: component.Settings{GameFile: gf, ShowFPS: opts.showFPS},
	}); err != nil {
		g.Close()
		return nil, err
	}
	if _, err := entity.NewMusicPlayer(g.world); err != nil {
		g.Close()
		return nil, err
	}

	var changes <-chan levels.Change
	if opts.watch {
		g.watcher, err = levels.WatchStore(store)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("watch levels: %w", err)
		}
		changes = g.watcher.Events
		go g.logWatchErrors()
	}

	audioCtx := audio.CurrentContext()
	if audioCtx == nil {
		audioCtx = audio.NewContext(assets.SampleRate)
	}
	physics := system.NewPhysicsSystem(tickDT)

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewDevKeysSystem(logger),
		system.NewBeginGameSystem(logger),
		system.NewLevelReloadSystem(changes, logger),
		system.NewTransitionLevelSystem(store, logger),
		system.NewNextLevelSystem(logger),
		system.NewWaitUntilUnloadedSystem(logger),
		system.NewPrepareLevelSystem(store, logger),
		system.NewLoadLevelSystem(store, g.loader, playerSpec, cameraSpec, logger),
		system.NewApplySaveOnLoadSystem(logger),
		system.NewUnloadLevelSystem(logger),
		system.NewSaveLevelSystem(store, logger),
		system.NewNextCheckpointSystem(logger),
		system.NewPlayerControllerSystem(tickDT),
		system.NewMovingSystem(tickDT),
		physics,
		system.NewContactSystem(),
		system.NewCheckpointSystem(g.saves, logger),
		system.NewGoalSystem(g.saves, logger),
		system.NewTransitionContactSystem(logger),
		system.NewGiveSystem(logger),
		system.NewDeathSystem(logger),
		system.NewCameraSystem(),
		system.NewMusicSystem(audioCtx, g.loader, logger),
		system.NewAudioSystem(audioCtx, g.loader, store, logger),
		system.NewRenderSystem(),
	)
	if opts.physicsDebug {
		g.scheduler.Add(system.NewPhysicsDebugSystem(physics))
	}
	// The overlay draws over everything else.
	g.scheduler.Add(system.NewOverlaySystem(assets.OverlayFace()))

	if err := g.start(gf, opts); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// start spawns the first instruction: a level load when one was picked on
// the command line, otherwise BeginGame.
func (g *Game) start(gf config.GameFile, opts gameOptions) error {
	id, ok := levels.ID(0), false
	if opts.load != nil {
		id, ok = *opts.load, true
	} else if opts.editor && len(gf.LevelOrder) > 0 {
		id, ok = gf.LevelOrder[0], true
	}
	if ok {
		_, err := entity.NewLoadLevel(g.world, id)
		return err
	}
	_, err := entity.NewInstruction(g.world, component.BeginGameComponent.Kind(), &component.BeginGame{})
	return err
}

// openSave loads the named save, creating it when it does not exist yet.
// An empty name plays without a save.
func openSave(ctx context.Context, store save.Store, name string) (*save.GameSave, error) {
	if name == "" {
		return nil, nil
	}
	gs, err := store.Load(ctx, name)
	if errors.Is(err, save.ErrNotFound) {
		gs = save.New(name)
		if err := store.Write(ctx, gs); err != nil {
			return nil, fmt.Errorf("create save %s: %w", name, err)
		}
		return gs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", name, err)
	}
	return gs, nil
}

func (g *Game) logWatchErrors() {
	for err := range g.watcher.Errors {
		g.logger.Warn("Level watcher error", zap.Error(err))
	}
}

func (g *Game) Title() string {
	return g.title
}

func (g *Game) Update() error {
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the watcher and releases the save store.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.saves != nil {
		if err := g.saves.Close(); err != nil {
			g.logger.Warn("Failed to close save store", zap.Error(err))
		}
	}
	g.loader.Wait()
}
