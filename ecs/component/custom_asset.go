package component

import (
	"github.com/milk9111/spatialasset/asset"
	"github.com/milk9111/spatialasset/customasset"
)

// CustomAssetHandle holds the demo's custom asset. IsLoaded flips to true
// once, after both the custom asset and the clip it names have loaded.
type CustomAssetHandle struct {
	Handle   asset.Handle[*customasset.CustomAsset]
	IsLoaded bool
}

var CustomAssetHandleComponent = NewComponent[CustomAssetHandle]()
