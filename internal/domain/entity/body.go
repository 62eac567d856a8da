package entity

// RigidBody2D is the physics body the controller drives.
// Implementations are owned by the physics host; Body is an in-memory one.
type RigidBody2D interface {
	Position() Vec2
	SetPosition(p Vec2)
	Velocity() Vec2
	SetVelocity(v Vec2)
	GravityScale() float64
	SetGravityScale(s float64)
}

// Transform exposes a world position, e.g. the ground-check point at the feet
type Transform interface {
	Position() Vec2
}

// Body is a RigidBody2D without a physics engine behind it
type Body struct {
	Pos   Vec2
	Vel   Vec2
	Scale float64
}

// NewBody creates a body at p with the given gravity scale
func NewBody(p Vec2, gravityScale float64) *Body {
	return &Body{Pos: p, Scale: gravityScale}
}

func (b *Body) Position() Vec2            { return b.Pos }
func (b *Body) SetPosition(p Vec2)        { b.Pos = p }
func (b *Body) Velocity() Vec2            { return b.Vel }
func (b *Body) SetVelocity(v Vec2)        { b.Vel = v }
func (b *Body) GravityScale() float64     { return b.Scale }
func (b *Body) SetGravityScale(s float64) { b.Scale = s }

// Anchor is a Transform fixed at an offset from a body
type Anchor struct {
	Body   RigidBody2D
	Offset Vec2
}

func (a Anchor) Position() Vec2 {
	return a.Body.Position().Add(a.Offset)
}
