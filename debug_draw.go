package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/steering"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var categoryColors = map[component.ColliderType]color.RGBA{
	component.ColliderObstacle: colornames.Slategray,
	component.ColliderPlayer:   colornames.Gold,
	component.ColliderEnemy:    colornames.Crimson,
	component.ColliderObject:   colornames.Mediumseagreen,
}

// drawSpace outlines every physics shape, colored by collider category.
func drawSpace(screen *ebiten.Image, pw *ecs.PhysicsWorld, height float64) {
	if pw == nil || screen == nil {
		return
	}
	cp.DrawSpace(pw.Space(), &spaceDrawer{screen: screen, height: height, physics: pw})
}

// drawGraph draws the obstacle graph nodes and their visibility edges.
func drawGraph(screen *ebiten.Image, g *steering.ObstacleGraph, height float64) {
	if g == nil {
		return
	}
	d := &spaceDrawer{screen: screen, height: height}
	nodes := g.Nodes()
	edge := toFColor(colornames.Darkslateblue, 0.35)
	for i, n := range nodes {
		for _, j := range g.Neighbors(i) {
			if j > i {
				d.drawLine(n, nodes[j], edge)
			}
		}
		d.DrawDot(debugDotSize, n, toFColor(colornames.Lightsteelblue, 1), nil)
	}
}

// spaceDrawer adapts chipmunk's debug drawing to an ebiten image. The
// world is y-up, the screen y-down.
type spaceDrawer struct {
	screen  *ebiten.Image
	height  float64
	physics *ecs.PhysicsWorld
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	x, y := d.toScreen(pos)
	vector.FillCircle(d.screen, x, y, float32(radius), toNRGBA(fill), true)
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return toFColor(colornames.White, 0.9)
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	category, _ := d.physics.ShapeCategory(shape)
	c, ok := categoryColors[category]
	if !ok {
		c = colornames.Darkgray
	}
	return toFColor(c, 0.6)
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Orange, 0.9)
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red, 0.9)
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *spaceDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *spaceDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(v.X), float32(d.height - v.Y)
}

func toFColor(c color.RGBA, alpha float32) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: alpha}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
