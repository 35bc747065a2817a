// Command assetcheck loads .custom files the way the game does and reports
// the clip each one resolves to, without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/common"
	"github.com/milk9111/spatialasset/customasset"
	"github.com/milk9111/spatialasset/sound"
)

func main() {
	root := flag.String("assets", "assets", "asset root directory")
	timeout := flag.Duration("timeout", 10*time.Second, "give up on a load after this long")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	common.SetDebug(*debug)

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcheck [-assets dir] file.custom...")
		os.Exit(2)
	}

	server := asset.NewServer(os.DirFS(*root), asset.Options{})
	defer server.Close()
	server.RegisterLoader(customasset.Loader{})
	server.RegisterLoader(&sound.ClipLoader{SampleRate: sound.SampleRate})

	failed := false
	for _, p := range paths {
		if err := check(server, p, *timeout); err != nil {
			common.LogError("%s: %v", p, err)
			failed = true
		}
	}
	if failed {
		server.Close()
		os.Exit(1)
	}
}

func check(server *asset.Server, p string, timeout time.Duration) error {
	custom := asset.Load[*customasset.CustomAsset](server, p)
	if err := wait(server, custom.ID(), timeout); err != nil {
		return err
	}
	value, ok := asset.Get(server, custom)
	if !ok {
		return fmt.Errorf("%s is not a custom asset", custom.Path())
	}

	clipHandle := value.Handle
	if err := wait(server, clipHandle.ID(), timeout); err != nil {
		return fmt.Errorf("clip %s: %w", clipHandle.Path(), err)
	}
	clip, ok := asset.Get(server, clipHandle)
	if !ok {
		return fmt.Errorf("clip %s is not an audio clip", clipHandle.Path())
	}
	fmt.Printf("%s -> %s (%s, %d Hz)\n", custom.Path(), clipHandle.Path(), clip.Duration().Round(time.Millisecond), clip.SampleRate)
	return nil
}

// wait polls id the way the game's load check does, once per frame.
func wait(server *asset.Server, id asset.ID, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		switch server.LoadState(id) {
		case asset.LoadStateLoaded:
			return nil
		case asset.LoadStateFailed:
			return server.Err(id)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("still loading after %s", timeout)
		}
		time.Sleep(time.Second / 60)
	}
}
