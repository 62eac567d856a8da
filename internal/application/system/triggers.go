package system

import (
	"sort"

	"github.com/solarlune/resolv"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/ecs"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

// triggerScale converts world units to resolv space units; one cell per tile
const triggerScale = 16

const checkpointSize = 1.0

// SecretWallOpener removes the secret wall tiles from the world
type SecretWallOpener interface {
	ClearSecretWalls() int
}

// TriggerSystem detects the player entering and leaving stage triggers:
// checkpoints, hazards, pickups and the secret wall. Resolv does the broad
// phase; the exact test is an AABB overlap in world units.
type TriggerSystem struct {
	space   *resolv.Space
	world   *ecs.World
	objects map[ecs.EntityID]*resolv.Object

	player  *resolv.Object
	playerW float64
	playerH float64
	inside  map[ecs.EntityID]bool

	listener ContactListener
	unlocks  *entity.UnlockState
	opener   SecretWallOpener
	events   []Event
}

// NewTriggerSystem creates triggers for every stage object
func NewTriggerSystem(stage *entity.Stage, entities *config.EntitiesConfig, checkpointTag string) *TriggerSystem {
	ts := &TriggerSystem{
		space:   resolv.NewSpace(stage.Width*triggerScale, stage.Height*triggerScale, triggerScale, triggerScale),
		world:   ecs.NewWorld(),
		objects: make(map[ecs.EntityID]*resolv.Object),
		inside:  make(map[ecs.EntityID]bool),
	}

	for _, c := range stage.Checkpoints {
		ts.add(ts.world.CreateCheckpoint(c.X, c.Y, checkpointSize, checkpointTag))
	}
	for _, h := range stage.Hazards {
		ts.add(ts.world.CreateHazard(h.Rect.X, h.Rect.Y, h.Rect.W, h.Rect.H, string(h.Tag)))
	}
	ts.addHazardTiles(stage)
	for _, p := range stage.Pickups {
		pc, ok := entities.Pickups[p.Kind]
		if !ok {
			continue
		}
		ts.add(ts.world.CreatePickup(p.Pos.X, p.Pos.Y, pc.Size, ecs.Pickup{
			Type:   p.Kind,
			Grants: pc.Grants,
			Key:    pc.Key,
		}))
	}
	for _, r := range stage.SecretWalls {
		ts.add(ts.world.CreateSecretWall(r.X, r.Y, r.W, r.H))
	}
	return ts
}

// Bind attaches the player. Contacts go to listener, pickups to unlocks.
func (ts *TriggerSystem) Bind(listener ContactListener, unlocks *entity.UnlockState, opener SecretWallOpener, playerW, playerH float64) {
	ts.listener = listener
	ts.unlocks = unlocks
	ts.opener = opener
	ts.playerW = playerW
	ts.playerH = playerH

	if ts.player != nil {
		ts.space.Remove(ts.player)
	}
	ts.player = resolv.NewObject(0, 0, playerW*triggerScale, playerH*triggerScale, "player")
	ts.space.Add(ts.player)
	ts.inside = make(map[ecs.EntityID]bool)
}

// World returns the trigger entities
func (ts *TriggerSystem) World() *ecs.World {
	return ts.world
}

// Update moves the player volume to center and fires enter/exit callbacks
func (ts *TriggerSystem) Update(center entity.Vec2) {
	if ts.player == nil {
		return
	}

	bounds := entity.RectAround(center, ts.playerW, ts.playerH)
	ts.player.X = bounds.X * triggerScale
	ts.player.Y = bounds.Y * triggerScale
	ts.player.Update()

	touching := make(map[ecs.EntityID]bool)
	if check := ts.player.Check(0, 0); check != nil {
		for _, obj := range check.Objects {
			id, ok := obj.Data.(ecs.EntityID)
			if !ok || ts.world.IsConsumed(id) {
				continue
			}
			if ts.rect(id).Overlaps(bounds) {
				touching[id] = true
			}
		}
	}

	// A hazard sends the player back, so the rest of touching was measured
	// at a stale position. Later enters wait for the next update.
	inside := make(map[ecs.EntityID]bool, len(touching))
	for _, id := range sortedIDs(touching) {
		if ts.inside[id] {
			inside[id] = true
		}
	}
	for _, id := range sortedIDs(touching) {
		if ts.inside[id] {
			continue
		}
		inside[id] = true
		if ts.enter(id) {
			break
		}
	}
	for _, id := range sortedIDs(ts.inside) {
		if !touching[id] {
			ts.exit(id)
		}
	}
	ts.inside = inside
}

// ConsumeCollected removes pickups whose rewards the player already holds
func (ts *TriggerSystem) ConsumeCollected(unlocks *entity.UnlockState) {
	for _, id := range ts.world.Triggers(ecs.TriggerPickup) {
		p := ts.world.Pickup[id]
		held := !p.Key || unlocks.HasSecretKey()
		for _, g := range p.Grants {
			held = held && unlocks.Enabled(entity.Ability(g))
		}
		if held {
			ts.consume(id)
		}
	}
}

// Events returns and clears the events produced since the last call
func (ts *TriggerSystem) Events() []Event {
	events := ts.events
	ts.events = nil
	return events
}

// enter dispatches a new overlap and reports whether it was a hazard
func (ts *TriggerSystem) enter(id ecs.EntityID) bool {
	trig := ts.world.Trigger[id]
	switch trig.Kind {
	case ecs.TriggerCheckpoint, ecs.TriggerHazard:
		if ts.listener != nil {
			ts.listener.OnContactEnter(ts.contact(id))
		}
	case ecs.TriggerPickup:
		ts.collect(id)
	case ecs.TriggerSecretWall:
		if ts.unlocks != nil && ts.unlocks.HasSecretKey() {
			ts.openSecretWalls()
		}
	}
	return trig.Kind == ecs.TriggerHazard
}

func (ts *TriggerSystem) exit(id ecs.EntityID) {
	trig := ts.world.Trigger[id]
	if trig.Kind != ecs.TriggerCheckpoint && trig.Kind != ecs.TriggerHazard {
		return
	}
	if ts.listener != nil {
		ts.listener.OnContactExit(ts.contact(id))
	}
}

func (ts *TriggerSystem) collect(id ecs.EntityID) {
	p := ts.world.Pickup[id]
	ev := PickupEvent{Type: p.Type, Key: p.Key}
	if ts.unlocks != nil {
		for _, g := range p.Grants {
			ts.unlocks.Grant(entity.Ability(g))
			ev.Grants = append(ev.Grants, entity.Ability(g))
		}
		if p.Key {
			ts.unlocks.GrantKey()
		}
	}
	ts.consume(id)
	ts.events = append(ts.events, ev)
}

func (ts *TriggerSystem) openSecretWalls() {
	cleared := 0
	if ts.opener != nil {
		cleared = ts.opener.ClearSecretWalls()
	}
	for _, id := range ts.world.Triggers(ecs.TriggerSecretWall) {
		ts.consume(id)
	}
	ts.events = append(ts.events, SecretWallEvent{TilesCleared: cleared})
}

func (ts *TriggerSystem) consume(id ecs.EntityID) {
	ts.world.Consume(id)
	if obj, ok := ts.objects[id]; ok {
		ts.space.Remove(obj)
		delete(ts.objects, id)
	}
}

func (ts *TriggerSystem) contact(id ecs.EntityID) Contact {
	cx, cy := ts.world.Center(id)
	return Contact{
		Layer:    entity.LayerTrigger,
		Tag:      entity.Tag(ts.world.Trigger[id].Tag),
		Position: entity.Vec2{X: cx, Y: cy},
	}
}

func (ts *TriggerSystem) rect(id ecs.EntityID) entity.Rect {
	p := ts.world.Position[id]
	a := ts.world.Area[id]
	return entity.Rect{X: p.X, Y: p.Y, W: a.W, H: a.H}
}

func (ts *TriggerSystem) add(id ecs.EntityID) {
	r := ts.rect(id)
	obj := resolv.NewObject(r.X*triggerScale, r.Y*triggerScale, r.W*triggerScale, r.H*triggerScale,
		ts.world.Trigger[id].Kind.String())
	obj.Data = id
	ts.space.Add(obj)
	ts.objects[id] = obj
}

// addHazardTiles merges horizontal runs of hazard tiles with the same tag
func (ts *TriggerSystem) addHazardTiles(stage *entity.Stage) {
	for y := 0; y < stage.Height; y++ {
		x := 0
		for x < stage.Width {
			tile := stage.Tiles[y][x]
			if tile.Type != entity.TileHazard {
				x++
				continue
			}
			start := x
			for x < stage.Width && stage.Tiles[y][x].Type == entity.TileHazard && stage.Tiles[y][x].Tag == tile.Tag {
				x++
			}
			ts.add(ts.world.CreateHazard(float64(start), float64(y), float64(x-start), 1, string(tile.Tag)))
		}
	}
}

func sortedIDs(set map[ecs.EntityID]bool) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
