package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeFeet
)

const (
	categoryGround uint = 1 << iota
	categoryPlayer
)

var groundFilter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: categoryGround}

// PhysicsSystem owns the Chipmunk space: static tiles, the player body and
// its feet sensor. It answers Sensor queries against the ground layer.
type PhysicsSystem struct {
	space    *cp.Space
	stage    *entity.Stage
	listener ContactListener

	secretShapes []*cp.Shape
	player       *PhysicsBody
}

// NewPhysicsSystem builds a space with the stage's solid tiles
func NewPhysicsSystem(settings config.PhysicsSettings, gravityY float64, stage *entity.Stage) *PhysicsSystem {
	space := cp.NewSpace()
	if settings.Iterations > 0 {
		space.Iterations = uint(settings.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})

	ps := &PhysicsSystem{
		space: space,
		stage: stage,
	}
	ps.buildStaticShapes()
	ps.setupHandlers()
	return ps
}

// SetContactListener routes feet sensor contacts to l
func (ps *PhysicsSystem) SetContactListener(l ContactListener) {
	ps.listener = l
}

// Space returns the underlying Chipmunk space
func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

// AddPlayer creates the player body centered on spawn. Rotation is locked and
// friction is zero so the controller alone decides horizontal speed.
func (ps *PhysicsSystem) AddPlayer(spawn entity.Vec2, hitbox config.HitboxConfig, mass, gravityScale float64) *PhysicsBody {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(toCP(spawn))

	pb := &PhysicsBody{body: body, gravityScale: gravityScale}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(pb.gravityScale), damping, dt)
	})

	shape := cp.NewBox(body, hitbox.Width, hitbox.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryPlayer, Mask: categoryGround})

	feetHeight := hitbox.FeetHeight
	if feetHeight <= 0 {
		feetHeight = 0.1
	}
	halfW := hitbox.Width * 0.45
	bottom := -hitbox.Height / 2
	feet := cp.NewBox2(body, cp.BB{L: -halfW, B: bottom - feetHeight/2, R: halfW, T: bottom + feetHeight/2}, 0)
	feet.SetSensor(true)
	feet.SetCollisionType(collisionTypeFeet)
	feet.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryPlayer, Mask: categoryGround})

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.space.AddShape(feet)

	pb.shape = shape
	pb.feet = feet
	pb.halfHeight = hitbox.Height / 2
	ps.player = pb
	return pb
}

// Step advances the simulation; contact callbacks fire synchronously
func (ps *PhysicsSystem) Step(dt float64) {
	ps.space.Step(dt)
}

// Raycast implements Sensor with a segment query
func (ps *PhysicsSystem) Raycast(origin, dir entity.Vec2, dist float64, layer entity.Layer) bool {
	if layer != entity.LayerGround || dist <= 0 {
		return false
	}
	end := origin.Add(dir.Scale(dist))
	info := ps.space.SegmentQueryFirst(toCP(origin), toCP(end), 0, groundFilter)
	return info.Shape != nil
}

// OverlapCircle implements Sensor with a nearest-point query. The normal
// points from the ground surface toward center.
func (ps *PhysicsSystem) OverlapCircle(center entity.Vec2, radius float64, layer entity.Layer) (entity.Vec2, bool) {
	if layer != entity.LayerGround || radius <= 0 {
		return entity.Vec2{}, false
	}
	info := ps.space.PointQueryNearest(toCP(center), radius, groundFilter)
	if info == nil || info.Shape == nil {
		return entity.Vec2{}, false
	}
	return fromCP(info.Gradient), true
}

// ClearSecretWalls removes the secret tiles from the stage and the space
func (ps *PhysicsSystem) ClearSecretWalls() int {
	for _, shape := range ps.secretShapes {
		ps.space.RemoveShape(shape)
	}
	ps.secretShapes = nil
	return ps.stage.ClearTiles(entity.TileSecret)
}

// buildStaticShapes merges horizontal runs of solid tiles into boxes.
// Secret tiles get their own runs so they can be removed later.
func (ps *PhysicsSystem) buildStaticShapes() {
	static := ps.space.StaticBody
	for y := 0; y < ps.stage.Height; y++ {
		x := 0
		for x < ps.stage.Width {
			tile := ps.stage.Tiles[y][x]
			if !tile.Solid {
				x++
				continue
			}
			start := x
			for x < ps.stage.Width && ps.stage.Tiles[y][x].Solid && ps.stage.Tiles[y][x].Type == tile.Type {
				x++
			}

			bb := cp.BB{L: float64(start), B: float64(y), R: float64(x), T: float64(y + 1)}
			shape := cp.NewBox2(static, bb, 0)
			shape.SetFriction(1)
			shape.SetCollisionType(collisionTypeSolid)
			shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryGround, Mask: cp.ALL_CATEGORIES})
			ps.space.AddShape(shape)

			if tile.Type == entity.TileSecret {
				ps.secretShapes = append(ps.secretShapes, shape)
			}
		}
	}
}

func (ps *PhysicsSystem) setupHandlers() {
	feetHandler := ps.space.NewCollisionHandler(collisionTypeFeet, collisionTypeSolid)
	feetHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if ps.listener != nil {
			ps.listener.OnContactEnter(Contact{Layer: entity.LayerGround})
		}
		return true
	}
	feetHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if ps.listener != nil {
			ps.listener.OnContactExit(Contact{Layer: entity.LayerGround})
		}
	}
}

// PhysicsBody adapts a Chipmunk body to entity.RigidBody2D.
// Gravity scale is applied in the body's velocity update.
type PhysicsBody struct {
	body         *cp.Body
	shape        *cp.Shape
	feet         *cp.Shape
	gravityScale float64
	halfHeight   float64
}

func (b *PhysicsBody) Position() entity.Vec2 {
	return fromCP(b.body.Position())
}

func (b *PhysicsBody) SetPosition(p entity.Vec2) {
	b.body.SetPosition(toCP(p))
}

func (b *PhysicsBody) Velocity() entity.Vec2 {
	return fromCP(b.body.Velocity())
}

func (b *PhysicsBody) SetVelocity(v entity.Vec2) {
	b.body.SetVelocityVector(toCP(v))
}

func (b *PhysicsBody) GravityScale() float64 {
	return b.gravityScale
}

func (b *PhysicsBody) SetGravityScale(s float64) {
	b.gravityScale = s
}

// Feet returns the ground check transform at the bottom of the body
func (b *PhysicsBody) Feet() entity.Transform {
	return entity.Anchor{Body: b, Offset: entity.Vec2{Y: -b.halfHeight}}
}

func toCP(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) entity.Vec2 {
	return entity.Vec2{X: v.X, Y: v.Y}
}
