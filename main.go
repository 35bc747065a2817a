package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/assets"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/customasset"
	"github.com/milk9111/spatialasset/ecs"
	"github.com/milk9111/spatialasset/ecs/entity"
	"github.com/milk9111/spatialasset/ecs/system"
	"github.com/milk9111/spatialasset/prefabs"
	"github.com/milk9111/spatialasset/sound"
)

func main() {
	assetDir := flag.String("assets", "assets", "asset root directory; the embedded assets are used when it does not exist")
	sceneName := flag.String("scene", "scene.yaml", "scene file in prefabs/")
	debug := flag.Bool("debug", false, "enable debug logging")
	watch := flag.Bool("watch", false, "reload assets when files under -assets change")
	workers := flag.Int("workers", 2, "concurrent asset loads")
	flag.Parse()

	common.SetDebug(*debug)

	scene, err := prefabs.LoadSceneSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}

	fsys, onDisk := assetFS(*assetDir)
	server := asset.NewServer(fsys, asset.Options{Workers: *workers})
	defer server.Close()

	audioContext := audio.NewContext(sound.SampleRate)
	server.RegisterLoader(&sound.ClipLoader{SampleRate: audioContext.SampleRate()})
	server.RegisterLoader(customasset.Loader{})

	var watcher *asset.Watcher
	if *watch && onDisk {
		watcher, err = asset.NewWatcher(*assetDir)
		if err != nil {
			common.LogWarn("asset watcher disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	world := ecs.NewWorld()
	if _, err := entity.NewFrameClock(world); err != nil {
		log.Fatal(err)
	}

	sphere := system.NewSpatialSphereSystem(server, scene.SpatialSphere)
	scheduler := ecs.NewScheduler()
	scheduler.Add(ecs.StageStartup,
		system.NewCustomAssetSetupSystem(server, scene.CustomAsset),
		system.NewSceneBasicsSystem(scene),
	)
	scheduler.Add(ecs.StagePreUpdate,
		system.NewCustomAssetLoadCheckSystem(server),
		sphere,
	)
	scheduler.Add(ecs.StageUpdate,
		system.NewCameraSystem(),
		system.NewRotateSystem(),
		system.NewTransformPropagateSystem(),
		system.NewAudioSystem(server, audioContext),
		system.NewSpatialAudioSystem(),
	)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("spatial asset")

	game := NewGame(world, scheduler, server, sphere, watcher)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// assetFS prefers the asset directory on disk and falls back to the copy
// embedded in the binary.
func assetFS(dir string) (fs.FS, bool) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir), true
	}
	common.LogInfo("asset directory %q not found, using embedded assets", dir)
	return assets.FS, false
}
