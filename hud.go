package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const controlHints = "WASD move  Space/Shift up/down  hold right mouse or arrows to look  Esc quit"

// HUD is the text overlay in the top-left corner.
type HUD struct {
	ui     *ebitenui.UI
	fps    *widget.Text
	status *widget.Text
}

func NewHUD() *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	fps := widget.NewText(widget.TextOpts.Text("", &face, white))
	status := widget.NewText(widget.TextOpts.Text("", &face, white))
	hints := widget.NewText(widget.TextOpts.Text(controlHints, &face, color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(fps)
	panel.AddChild(status)
	panel.AddChild(hints)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
	)
	root.AddChild(panel)

	return &HUD{ui: &ebitenui.UI{Container: root}, fps: fps, status: status}
}

func (h *HUD) Update(w *ecs.World, assets asset.Store, spawned bool) {
	h.fps.Label = fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
	lines := assetStatus(w, assets)
	if spawned {
		lines = append(lines, "spatial sphere: playing")
	} else {
		lines = append(lines, "spatial sphere: waiting for assets")
	}
	h.status.Label = strings.Join(lines, "\n")
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

// assetStatus describes the custom asset and the clip it names.
func assetStatus(w *ecs.World, assets asset.Store) []string {
	handle, ok := ecs.Single(w, component.CustomAssetHandleComponent.Kind())
	if !ok {
		return []string{"custom asset: not requested"}
	}

	lines := []string{fmt.Sprintf("custom asset: %s (%s)", handle.Handle.Path(), assets.LoadState(handle.Handle.ID()))}
	custom, ok := asset.Get(assets, handle.Handle)
	if !ok || custom == nil {
		return append(lines, "audio: unknown")
	}
	return append(lines, fmt.Sprintf("audio: %s (%s)", custom.Handle.Path(), assets.LoadState(custom.Handle.ID())))
}
