package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/younwookim/rooks/internal/application/replay"
	"github.com/younwookim/rooks/internal/application/scene/playing"
	"github.com/younwookim/rooks/internal/application/system"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

// ReplayResult is the state a headless replay ends in
type ReplayResult struct {
	Stage    string
	Frames   int
	Position entity.Vec2
	Velocity entity.Vec2
	State    entity.PlayerState
	Unlocks  []entity.Ability
	Events   map[string]int
}

// RunReplay plays recorded input against a fresh session without a window
func RunReplay(cfg *config.GameConfig, stageCfg *config.StageConfig, data *replay.ReplayData) (*ReplayResult, error) {
	if data == nil {
		return nil, fmt.Errorf("replay data is required")
	}
	if data.Stage != "" && stageCfg != nil && data.Stage != stageCfg.ID {
		return nil, fmt.Errorf("replay recorded on stage %q, got %q", data.Stage, stageCfg.ID)
	}

	session, err := playing.NewSession(cfg, stageCfg, data.Seed)
	if err != nil {
		return nil, err
	}

	result := &ReplayResult{
		Stage:  session.StageID(),
		Events: make(map[string]int),
	}
	replayer := replay.NewReplayer(*data)
	for !replayer.Done() {
		in := replayer.GetInput()
		for _, ev := range session.Tick(in, replayer.FrameDelta()) {
			result.Events[eventName(ev)]++
		}
	}

	result.Frames = session.Frame()
	result.Position = session.Body().Position()
	result.Velocity = session.Body().Velocity()
	result.State = session.Controller().State()
	result.Unlocks = session.Controller().Unlocks().Abilities()
	return result, nil
}

func eventName(ev system.Event) string {
	switch e := ev.(type) {
	case system.JumpEvent:
		if e.Double {
			return "double_jump"
		}
		return "jump"
	case system.DashEvent:
		if e.Start {
			return "dash_start"
		}
		return "dash_end"
	case system.GroundEvent:
		if e.Grounded {
			return "landed"
		}
		return "left_ground"
	case system.CheckpointEvent:
		return "checkpoint"
	case system.RespawnEvent:
		return "respawn"
	case system.PickupEvent:
		return "pickup"
	case system.SecretWallEvent:
		return "secret_wall"
	}
	return "unknown"
}

// String renders the result the way the -replay flag prints it
func (r *ReplayResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stage:     %s\n", r.Stage)
	fmt.Fprintf(&b, "frames:    %d\n", r.Frames)
	fmt.Fprintf(&b, "position:  (%.4f, %.4f)\n", r.Position.X, r.Position.Y)
	fmt.Fprintf(&b, "velocity:  (%.4f, %.4f)\n", r.Velocity.X, r.Velocity.Y)
	fmt.Fprintf(&b, "jump:      %s\n", r.State.Jump)
	fmt.Fprintf(&b, "grounded:  %v\n", r.State.Grounded)
	fmt.Fprintf(&b, "dashing:   %v\n", r.State.Dashing)
	fmt.Fprintf(&b, "respawn:   (%.2f, %.2f)\n", r.State.Respawn.X, r.State.Respawn.Y)
	fmt.Fprintf(&b, "unlocks:   %v\n", r.Unlocks)

	names := make([]string, 0, len(r.Events))
	for name := range r.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "event %-12s %d\n", name+":", r.Events[name])
	}
	return b.String()
}
