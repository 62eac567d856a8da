package ecs

import "sort"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Position map[EntityID]Position
	Area     map[EntityID]Area
	Trigger  map[EntityID]Trigger
	Pickup   map[EntityID]Pickup

	// Tags
	Consumed map[EntityID]struct{}
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil"
		Position: make(map[EntityID]Position),
		Area:     make(map[EntityID]Area),
		Trigger:  make(map[EntityID]Trigger),
		Pickup:   make(map[EntityID]Pickup),
		Consumed: make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Position, id)
	delete(w.Area, id)
	delete(w.Trigger, id)
	delete(w.Pickup, id)
	delete(w.Consumed, id)
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

func (w *World) createTrigger(x, y, width, height float64, kind TriggerKind, tag string) EntityID {
	id := w.NewEntity()
	w.Position[id] = Position{X: x, Y: y}
	w.Area[id] = Area{W: width, H: height}
	w.Trigger[id] = Trigger{Kind: kind, Tag: tag}
	return id
}

// CreateCheckpoint creates a checkpoint trigger centered on (x, y)
func (w *World) CreateCheckpoint(x, y, size float64, tag string) EntityID {
	return w.createTrigger(x-size/2, y-size/2, size, size, TriggerCheckpoint, tag)
}

// CreateHazard creates a hazard region
func (w *World) CreateHazard(x, y, width, height float64, tag string) EntityID {
	return w.createTrigger(x, y, width, height, TriggerHazard, tag)
}

// CreatePickup creates a pickup centered on (x, y)
func (w *World) CreatePickup(x, y, size float64, pickup Pickup) EntityID {
	id := w.createTrigger(x-size/2, y-size/2, size, size, TriggerPickup, pickup.Type)
	w.Pickup[id] = pickup
	return id
}

// CreateSecretWall creates the touch region in front of a secret wall
func (w *World) CreateSecretWall(x, y, width, height float64) EntityID {
	return w.createTrigger(x, y, width, height, TriggerSecretWall, "")
}

// Center returns the center of an entity's area
func (w *World) Center(id EntityID) (float64, float64) {
	p := w.Position[id]
	a := w.Area[id]
	return p.X + a.W/2, p.Y + a.H/2
}

// Consume marks a one-shot entity as used
func (w *World) Consume(id EntityID) {
	w.Consumed[id] = struct{}{}
}

// IsConsumed reports whether a one-shot entity has been used
func (w *World) IsConsumed(id EntityID) bool {
	_, ok := w.Consumed[id]
	return ok
}

// Triggers returns the live triggers of a kind in creation order
func (w *World) Triggers(kind TriggerKind) []EntityID {
	var ids []EntityID
	for id, t := range w.Trigger {
		if t.Kind == kind && !w.IsConsumed(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
