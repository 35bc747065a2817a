package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
)

const (
	ambientLight = 0.35
	gridLines    = 40
)

// RenderSystem draws the scene from the first camera: the ground as a grid,
// spheres as lit discs.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// View is a camera ready to project world points to screen pixels.
type View struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	focal  float64
	near   float64
	width  float64
	height float64
}

// NewView builds a view for a camera at global transform g.
func NewView(g component.GlobalTransform, cam component.Camera, width, height float64) View {
	aspect := width / height
	return View{
		view:   g.Matrix.Inv(),
		proj:   mgl64.Perspective(cam.FovY, aspect, cam.Near, cam.Far),
		focal:  1 / math.Tan(cam.FovY/2),
		near:   cam.Near,
		width:  width,
		height: height,
	}
}

// ToView transforms a world point into camera space.
func (v View) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return v.view.Mul4x1(p.Vec4(1)).Vec3()
}

// Project maps a camera-space point to screen pixels. It reports false for
// points behind the near plane.
func (v View) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	if -p.Z() < v.near {
		return 0, 0, false
	}
	clip := v.proj.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * v.width, (1 - ndc.Y()) / 2 * v.height, true
}

// ScreenRadius returns the on-screen radius of a sphere at camera depth.
func (v View) ScreenRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * v.focal / depth * v.height / 2
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}
	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camGlobal, ok := ecs.Get(w, r.camEntity, component.GlobalTransformComponent.Kind())
	if !ok {
		return
	}

	bounds := screen.Bounds()
	v := NewView(*camGlobal, *cam, float64(bounds.Dx()), float64(bounds.Dy()))
	lightDir := r.lightDirection(w)

	ecs.ForEach3(w, component.MeshComponent.Kind(), component.MaterialComponent.Kind(), component.GlobalTransformComponent.Kind(), func(_ ecs.Entity, mesh *component.Mesh, mat *component.Material, g *component.GlobalTransform) {
		if mesh.Shape == component.MeshPlane {
			drawGrid(screen, v, g.Matrix, mesh.Size, shade(mat, common.Lerp(ambientLight, 1, math.Max(0, -lightDir.Y()))))
		}
	})

	type disc struct {
		x, y, r, depth float64
		clr            color.Color
	}
	var discs []disc
	ecs.ForEach3(w, component.MeshComponent.Kind(), component.MaterialComponent.Kind(), component.GlobalTransformComponent.Kind(), func(_ ecs.Entity, mesh *component.Mesh, mat *component.Material, g *component.GlobalTransform) {
		if mesh.Shape != component.MeshSphere {
			return
		}
		p := v.ToView(g.Translation())
		x, y, ok := v.Project(p)
		if !ok {
			return
		}
		// Light the disc as the hemisphere facing the camera.
		toCamera := camGlobal.Translation().Sub(g.Translation())
		lit := ambientLight
		if toCamera.Len() > 0 {
			lit = common.Lerp(ambientLight, 1, math.Max(0, -toCamera.Normalize().Dot(lightDir)))
		}
		discs = append(discs, disc{
			x: x, y: y, depth: -p.Z(),
			r:   math.Max(1, v.ScreenRadius(mesh.Radius, -p.Z())),
			clr: shade(mat, lit),
		})
	})

	sort.Slice(discs, func(i, j int) bool { return discs[i].depth > discs[j].depth })
	for _, d := range discs {
		vector.DrawFilledCircle(screen, float32(d.x), float32(d.y), float32(d.r), d.clr, true)
	}

	cx, cy := float32(bounds.Dx())/2, float32(bounds.Dy())/2
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, color.White, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, color.White, false)
}

func (r *RenderSystem) lightDirection(w *ecs.World) mgl64.Vec3 {
	sun, ok := ecs.First(w, component.DirectionalLightComponent.Kind())
	if !ok {
		return mgl64.Vec3{0, -1, 0}
	}
	g, ok := ecs.Get(w, sun, component.GlobalTransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{0, -1, 0}
	}
	return g.Rotation().Rotate(mgl64.Vec3{0, 0, -1}).Normalize()
}

// drawGrid draws a plane of half-extent size in model space as grid lines,
// clipping each line against the near plane.
func drawGrid(screen *ebiten.Image, v View, model mgl64.Mat4, size float64, clr color.Color) {
	step := 2 * size / gridLines
	for i := 0; i <= gridLines; i++ {
		o := -size + float64(i)*step
		drawLine(screen, v, model, mgl64.Vec3{o, 0, -size}, mgl64.Vec3{o, 0, size}, clr)
		drawLine(screen, v, model, mgl64.Vec3{-size, 0, o}, mgl64.Vec3{size, 0, o}, clr)
	}
}

func drawLine(screen *ebiten.Image, v View, model mgl64.Mat4, a, b mgl64.Vec3, clr color.Color) {
	pa := v.ToView(model.Mul4x1(a.Vec4(1)).Vec3())
	pb := v.ToView(model.Mul4x1(b.Vec4(1)).Vec3())
	pa, pb, ok := clipNear(pa, pb, v.near)
	if !ok {
		return
	}
	x0, y0, ok0 := v.Project(pa)
	x1, y1, ok1 := v.Project(pb)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
}

// clipNear trims the camera-space segment a-b to the part in front of the
// near plane.
func clipNear(a, b mgl64.Vec3, near float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	// Nudge inside so the clipped endpoint still projects.
	limit := -near * 1.0001
	aIn, bIn := a.Z() <= limit, b.Z() <= limit
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	}
	t := (limit - a.Z()) / (b.Z() - a.Z())
	p := a.Add(b.Sub(a).Mul(t))
	if aIn {
		return a, p, true
	}
	return p, b, true
}

func shade(mat *component.Material, lit float64) color.Color {
	base := color.NRGBAModel.Convert(colorOr(mat.BaseColor, color.White)).(color.NRGBA)
	r := float64(base.R) * lit
	g := float64(base.G) * lit
	b := float64(base.B) * lit
	if mat.Emissive != nil {
		e := color.NRGBAModel.Convert(mat.Emissive).(color.NRGBA)
		r += float64(e.R)
		g += float64(e.G)
		b += float64(e.B)
	}
	return color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: base.A}
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}

func clampByte(v float64) uint8 {
	return uint8(common.Clamp(v, 0, 255))
}
