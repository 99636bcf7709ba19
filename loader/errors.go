package loader

import "github.com/rotisserie/eris"

// ErrEngineLoad wraps failures reported by the engine loader for a single id.
var ErrEngineLoad = eris.New("engine load failed")

// WarningKind classifies a per-id problem in a batch.
type WarningKind int

const (
	AssetNotFound WarningKind = iota
	EngineLoadFailure
)

func (k WarningKind) String() string {
	switch k {
	case AssetNotFound:
		return "asset_not_found"
	case EngineLoadFailure:
		return "engine_load_failure"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal per-id problem. The batch it belongs to still
// completes for every other id.
type Warning struct {
	ID   string
	Kind WarningKind
	Err  error
}
