package render

import "errors"

// Engine-reported failures, each scoped to the smallest unit of work the
// orchestrator can skip without corrupting sibling units.
var (
	ErrRenderFailed  = errors.New("scene clip render failed")
	ErrMergeFailed   = errors.New("crossfade merge failed")
	ErrMixFailed     = errors.New("music mix failed")
	ErrReframeFailed = errors.New("vertical reframe failed")
	ErrStingerFailed = errors.New("stinger build failed")
	ErrConcatFailed  = errors.New("segment concat failed")
)
