// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/rooks/internal/application/replay"
	"github.com/younwookim/rooks/internal/application/scene"
	"github.com/younwookim/rooks/internal/application/state"
	"github.com/younwookim/rooks/internal/application/system"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/ecs"
	"github.com/younwookim/rooks/internal/infrastructure/config"
	"github.com/younwookim/rooks/internal/infrastructure/save"
)

// Colors for rendering
var (
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorSpike      = color.RGBA{200, 50, 50, 255}
	colorSecret     = color.RGBA{70, 70, 95, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorDash       = color.RGBA{255, 255, 255, 255}
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorCheckpoint = color.RGBA{90, 90, 140, 255}
	colorActive     = color.RGBA{120, 220, 255, 255}
	colorPickup     = color.RGBA{255, 215, 0, 255}
)

// Options are the optional collaborators of the scene
type Options struct {
	// RecordPath records input to this file; empty disables recording
	RecordPath string

	// Replay plays back recorded input instead of reading the keyboard
	Replay *replay.ReplayData

	// Store persists progress; nil disables saving
	Store *save.Store

	// Loader and Watcher enable config hot reload of StageName
	Loader    *config.Loader
	Watcher   *config.Watcher
	StageName string
	Seed      int64
}

// Playing is the main gameplay scene
type Playing struct {
	config   *config.GameConfig
	stageCfg *config.StageConfig
	session  *Session
	state    state.GameState
	cam      camera

	input    system.InputSource
	replayer *replay.Replayer

	store     *save.Store
	loader    *config.Loader
	watcher   *config.Watcher
	stageName string
	seed      int64

	// Input recording
	recorder       *Recorder
	recordFilename string

	background   color.RGBA
	playerColor  color.RGBA
	pickupColors map[string]color.RGBA
}

// New creates a new Playing scene and restores saved progress
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	seed := opts.Seed
	if opts.Replay != nil {
		seed = opts.Replay.Seed
	} else if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := NewSession(cfg, stageCfg, seed)
	if err != nil {
		return nil, err
	}

	display := cfg.Settings.Display
	cam := camera{
		ppu:     display.PixelsPerUnit,
		screenW: display.ScreenWidth,
		screenH: display.ScreenHeight,
	}
	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		session:        session,
		state:          state.StatePlaying,
		cam:            cam,
		store:          opts.Store,
		loader:         opts.Loader,
		watcher:        opts.Watcher,
		stageName:      opts.StageName,
		seed:           seed,
		recordFilename: opts.RecordPath,
	}
	if p.cam.ppu <= 0 {
		p.cam.ppu = 16
	}
	p.applyColors()

	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		p.input = p.replayer
		p.state = state.StateReplaying
		log.Printf("Replaying %d frames (seed: %d)", p.replayer.TotalFrames(), seed)
	} else {
		p.input = system.NewInputSystem(system.DefaultKeyBindings())
		// Recordings start from a fresh stage so a replay reproduces them
		if opts.RecordPath == "" {
			p.restoreProgress()
		}
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" && opts.Replay == nil {
		p.recorder = NewRecorder(seed, stageCfg.ID)
		log.Printf("Recording enabled: %s (seed: %d)", opts.RecordPath, seed)
	}

	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.pollReload()

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(dt)
	case state.StateReplaying:
		p.updateReplaying()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) {
	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	// F9: Forget saved progress
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) && p.store != nil {
		if err := p.store.Clear(p.session.StageID()); err != nil {
			log.Printf("Warning: %v", err)
		} else {
			log.Printf("Progress cleared")
		}
	}

	input := p.input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(dt, input)
	}
	p.handleEvents(p.session.Tick(input, dt))
}

func (p *Playing) updateReplaying() {
	input := p.input.GetInput()
	p.handleEvents(p.session.Tick(input, p.replayer.FrameDelta()))

	if p.replayer.Done() {
		p.state = state.StateReplayDone
		st := p.session.Controller().State()
		pos := p.session.Body().Position()
		log.Printf("Replay finished after %d frames: pos=(%.3f, %.3f) jump=%s",
			p.session.Frame(), pos.X, pos.Y, st.Jump)
	}
}

func (p *Playing) handleEvents(events []system.Event) {
	for _, ev := range events {
		log.Print(describeEvent(ev))

		switch ev.(type) {
		case system.CheckpointEvent, system.PickupEvent:
			p.saveProgress()
		}
	}
}

// describeEvent renders an event as a log line
func describeEvent(ev system.Event) string {
	switch e := ev.(type) {
	case system.JumpEvent:
		if e.Double {
			return fmt.Sprintf("Double jump (vy=%.2f)", e.Velocity)
		}
		return fmt.Sprintf("Jump (vy=%.2f)", e.Velocity)
	case system.DashEvent:
		if e.Start {
			return fmt.Sprintf("Dash start (dir=%+.0f)", e.Direction)
		}
		return "Dash end"
	case system.GroundEvent:
		if e.Grounded {
			return "Landed"
		}
		return "Left ground"
	case system.CheckpointEvent:
		return fmt.Sprintf("Checkpoint reached at (%.2f, %.2f)", e.Position.X, e.Position.Y)
	case system.RespawnEvent:
		if e.Tag == "" {
			return fmt.Sprintf("Respawned at (%.2f, %.2f)", e.Position.X, e.Position.Y)
		}
		return fmt.Sprintf("Respawned at (%.2f, %.2f) after %s", e.Position.X, e.Position.Y, e.Tag)
	case system.PickupEvent:
		if e.Key {
			return fmt.Sprintf("Picked up %s (secret key)", e.Type)
		}
		return fmt.Sprintf("Picked up %s (%s)", e.Type, joinAbilities(e.Grants))
	case system.SecretWallEvent:
		return fmt.Sprintf("Secret wall opened (%d tiles)", e.TilesCleared)
	}
	return fmt.Sprintf("Event %T", ev)
}

func joinAbilities(abilities []entity.Ability) string {
	names := make([]string, len(abilities))
	for i, a := range abilities {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func (p *Playing) restoreProgress() {
	progress, err := p.store.Load(p.session.StageID())
	if err != nil {
		log.Printf("Warning: Could not load progress: %v", err)
		return
	}
	if progress == nil {
		return
	}
	p.session.Restore(progress)
	log.Printf("Progress restored: checkpoint=%v abilities=%v key=%v",
		progress.HasCheckpoint, progress.Abilities, progress.SecretKey)
}

func (p *Playing) saveProgress() {
	if p.store == nil || p.replayer != nil {
		return
	}
	if err := p.store.Save(p.session.Progress()); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// pollReload rebuilds the session when a watched config file changes.
// Progress carries over and the player respawns.
func (p *Playing) pollReload() {
	if p.watcher == nil || p.loader == nil {
		return
	}
	changed := p.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.Printf("Config changed: %s", strings.Join(changed, ", "))

	cfg, err := p.loader.LoadAll()
	if err != nil {
		log.Printf("Reload failed, keeping current config: %v", err)
		return
	}
	stageCfg, err := p.loader.LoadStage(p.stageName)
	if err != nil {
		log.Printf("Reload failed, keeping current stage: %v", err)
		return
	}
	p.reload(cfg, stageCfg)
}

func (p *Playing) reload(cfg *config.GameConfig, stageCfg *config.StageConfig) {
	session, err := NewSession(cfg, stageCfg, p.seed)
	if err != nil {
		log.Printf("Reload failed: %v", err)
		return
	}
	session.Restore(p.session.Progress())

	p.config = cfg
	p.stageCfg = stageCfg
	p.session = session
	p.applyColors()
	log.Printf("Config reloaded")
}

func (p *Playing) applyColors() {
	p.background = parseColor(p.stageCfg.Background, colorBG)
	p.playerColor = parseColor(p.config.Entities.Player.Color, colorPlayer)
	p.pickupColors = make(map[string]color.RGBA, len(p.config.Entities.Pickups))
	for name, pc := range p.config.Entities.Pickups {
		p.pickupColors[name] = parseColor(pc.Color, colorPickup)
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	stage := p.session.Stage()
	p.cam.follow(p.session.RenderPosition(), stage.Width, stage.Height)

	p.drawTiles(screen)
	p.drawTriggers(screen)
	hitbox := p.config.Entities.Player.Hitbox
	p.session.Effects().Draw(screen, &p.cam, hitbox.Width, hitbox.Height)
	p.drawPlayer(screen)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY FINISHED")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	stage := p.session.Stage()
	for y := 0; y < stage.Height; y++ {
		for x := 0; x < stage.Width; x++ {
			var c color.Color
			switch stage.Tiles[y][x].Type {
			case entity.TileGround:
				c = colorWall
			case entity.TileHazard:
				c = colorSpike
			case entity.TileSecret:
				c = colorSecret
			default:
				continue
			}
			sx, sy, w, h := p.cam.rect(entity.Rect{X: float64(x), Y: float64(y), W: 1, H: 1})
			ebitenutil.DrawRect(screen, sx, sy, w, h, c)
		}
	}
}

func (p *Playing) drawTriggers(screen *ebiten.Image) {
	world := p.session.Triggers().World()
	st := p.session.Controller().State()

	for _, id := range world.Triggers(ecs.TriggerCheckpoint) {
		c := colorCheckpoint
		cx, cy := world.Center(id)
		if st.HasCheckpoint && st.Checkpoint == (entity.Vec2{X: cx, Y: cy}) {
			c = colorActive
		}
		p.drawEntity(screen, world, id, 0.3, c)
	}
	for _, id := range world.Triggers(ecs.TriggerHazard) {
		if world.Trigger[id].Tag != "Enemy" {
			continue
		}
		p.drawEntity(screen, world, id, 1, colorEnemy)
	}
	for _, id := range world.Triggers(ecs.TriggerPickup) {
		c, ok := p.pickupColors[world.Pickup[id].Type]
		if !ok {
			c = colorPickup
		}
		p.drawEntity(screen, world, id, 1, c)
	}
}

// drawEntity draws an entity's area; width scales it around its center
func (p *Playing) drawEntity(screen *ebiten.Image, world *ecs.World, id ecs.EntityID, width float64, c color.Color) {
	area := world.Area[id]
	cx, cy := world.Center(id)
	r := entity.RectAround(entity.Vec2{X: cx, Y: cy}, area.W*width, area.H)
	x, y, w, h := p.cam.rect(r)
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	hitbox := p.config.Entities.Player.Hitbox
	pos := p.session.RenderPosition()
	x, y, w, h := p.cam.rect(entity.RectAround(pos, hitbox.Width, hitbox.Height))

	ctrl := p.session.Controller()
	c := p.playerColor
	if ctrl.State().Dashing {
		c = colorDash
	}
	ebitenutil.DrawRect(screen, x, y, w, h, c)

	// Eye on the facing side, leaning forward with speed
	anim := ctrl.Animation()
	lean := w * 0.15 * anim.Blend
	eyeX := x + w*0.6 + lean
	if anim.FlipX || ctrl.State().Facing < 0 {
		eyeX = x + w*0.25 - lean
	}
	ebitenutil.DrawRect(screen, eyeX, y+h*0.25, w*0.15, h*0.15, colorBG)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	ctrl := p.session.Controller()
	st := ctrl.State()
	unlocks := ctrl.Unlocks()

	var abilities []string
	for _, a := range unlocks.Abilities() {
		abilities = append(abilities, string(a))
	}
	if unlocks.HasSecretKey() {
		abilities = append(abilities, "key")
	}

	status := fmt.Sprintf("%s | %s | %s", p.stageCfg.Name, st.Jump, ctrl.Animation().Name)
	if len(abilities) > 0 {
		status += " | " + strings.Join(abilities, ", ")
	}
	ebitenutil.DebugPrintAt(screen, status, 4, p.cam.screenH-16)

	// Controls
	debugText := "A/D: Move | Space: Jump | Shift: Dash | Ctrl: Run | ESC: Pause"
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.cam.screenW), float64(p.cam.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, text, p.cam.screenW/2-50, p.cam.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	p.saveProgress()
}

// Session returns the running simulation
func (p *Playing) Session() *Session {
	return p.session
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.cam.screenW, p.cam.screenH
}
