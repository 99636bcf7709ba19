package registry

import "github.com/rotisserie/eris"

var (
	// ErrManifestFetch is returned when a manifest could not be retrieved.
	ErrManifestFetch = eris.New("manifest fetch failed")
	// ErrManifestDecode is returned when a manifest document is malformed.
	ErrManifestDecode = eris.New("manifest decode failed")
	// ErrIDCollision marks an id declared by more than one manifest.
	ErrIDCollision = eris.New("asset id collision")
	// ErrAssetNotFound is returned for ids absent from every registered manifest.
	ErrAssetNotFound = eris.New("asset not found")
)
