package save

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/rooks/internal/domain/entity"
)

// Progress is what survives between runs of a stage
type Progress struct {
	StageID       string   `json:"stageId"`
	HasCheckpoint bool     `json:"hasCheckpoint"`
	CheckpointX   float64  `json:"checkpointX"`
	CheckpointY   float64  `json:"checkpointY"`
	Abilities     []string `json:"abilities,omitempty"`
	SecretKey     bool     `json:"secretKey"`
}

// Capture snapshots the player's checkpoint and unlocks
func Capture(stageID string, state entity.PlayerState, unlocks *entity.UnlockState) *Progress {
	p := &Progress{
		StageID:       stageID,
		HasCheckpoint: state.HasCheckpoint,
		CheckpointX:   state.Checkpoint.X,
		CheckpointY:   state.Checkpoint.Y,
	}
	if unlocks != nil {
		for _, a := range unlocks.Abilities() {
			p.Abilities = append(p.Abilities, string(a))
		}
		p.SecretKey = unlocks.HasSecretKey()
	}
	return p
}

// Checkpoint returns the saved respawn target, if any
func (p *Progress) Checkpoint() (entity.Vec2, bool) {
	return entity.Vec2{X: p.CheckpointX, Y: p.CheckpointY}, p.HasCheckpoint
}

// ApplyUnlocks grants the saved abilities and key on top of u
func (p *Progress) ApplyUnlocks(u *entity.UnlockState) {
	for _, a := range p.Abilities {
		u.Grant(entity.Ability(a))
	}
	if p.SecretKey {
		u.GrantKey()
	}
}

type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store persists progress per stage. A nil Store saves nothing.
type Store struct {
	items itemStore
}

// Open creates a store in the user's data directory for appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return &Store{items: m}, nil
}

// Load returns the saved progress for a stage, or nil when there is none
func (s *Store) Load(stageID string) (*Progress, error) {
	if s == nil {
		return nil, nil
	}

	data, err := s.items.LoadItem(itemKey(stageID))
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse progress: %w", err)
	}
	return &p, nil
}

// Save writes progress for p.StageID
func (s *Store) Save(p *Progress) error {
	if s == nil || p == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := s.items.SaveItem(itemKey(p.StageID), data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Clear forgets the progress of a stage
func (s *Store) Clear(stageID string) error {
	if s == nil {
		return nil
	}
	if err := s.items.SaveItem(itemKey(stageID), nil); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

func itemKey(stageID string) string {
	return "progress_" + stageID
}
