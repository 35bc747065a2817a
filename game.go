package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/system"
	"golang.org/x/image/colornames"
)

var skyColor = colornames.Darkslategray

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	sphere    *system.SpatialSphereSystem
	hud       *HUD

	server  *asset.Server
	watcher *asset.Watcher
}

func NewGame(world *ecs.World, scheduler *ecs.Scheduler, server *asset.Server, sphere *system.SpatialSphereSystem, watcher *asset.Watcher) *Game {
	return &Game{
		world:     world,
		scheduler: scheduler,
		render:    system.NewRenderSystem(),
		sphere:    sphere,
		hud:       NewHUD(),
		server:    server,
		watcher:   watcher,
	}
}

func (g *Game) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.drainReloads()
	system.AdvanceTime(g.world, 1/float64(ebiten.TPS()))
	g.scheduler.Update(g.world)

	_, spawned := g.sphere.Pivot()
	g.hud.Update(g.world, g.server, spawned)
	return nil
}

// drainReloads forwards pending file changes to the asset server without
// blocking the frame.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case p, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.server.Reload(p) {
				common.LogInfo("reloading %s", p)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			common.LogWarn("asset watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
