package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/rooks/internal/application/game"
	"github.com/younwookim/rooks/internal/application/replay"
	"github.com/younwookim/rooks/internal/application/scene/playing"
	"github.com/younwookim/rooks/internal/infrastructure/config"
	"github.com/younwookim/rooks/internal/infrastructure/save"
)

const appName = "rooks"

func main() {
	// Parse command line flags
	stageFlag := flag.String("stage", "rooks", "Stage to load from the stages directory")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded ones")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Run a recorded replay headless and print the final state")
	watchFlag := flag.Bool("watch", false, "Reload configs when files under -config change")
	saveFlag := flag.Bool("save", false, "Persist checkpoint and unlocks between runs")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		runReplayFile(loader, cfg, *replayFlag, *stageFlag)
		return
	}

	// Load stage
	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	opts := playing.Options{
		RecordPath: *recordFlag,
		StageName:  *stageFlag,
	}
	if *saveFlag {
		store, err := save.Open(appName)
		if err != nil {
			log.Printf("Warning: Could not initialize persistence: %v", err)
		} else {
			opts.Store = store
		}
	}
	if *watchFlag {
		if *configFlag == "" {
			log.Printf("Warning: -watch needs -config; hot reload disabled")
		} else {
			watcher, err := config.NewWatcher(*configFlag, filepath.Join(*configFlag, "stages"))
			if err != nil {
				log.Fatalf("Failed to watch configs: %v", err)
			}
			defer func() { _ = watcher.Close() }()
			opts.Watcher = watcher
			opts.Loader = loader
			log.Printf("Watching %s for changes", *configFlag)
		}
	}

	// Create game
	scene, err := playing.New(cfg, stageCfg, opts)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	display := cfg.Settings.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	g.SetMaxFrameDelta(cfg.Settings.Timestep.MaxFrameDelta)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(stageCfg.Name)
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	scene.OnExit()
}

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func runReplayFile(loader *config.Loader, cfg *config.GameConfig, path, stageName string) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}
	if data.Stage != "" {
		stageName = data.Stage
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	result, err := RunReplay(cfg, stageCfg, data)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	fmt.Print(result)
}
