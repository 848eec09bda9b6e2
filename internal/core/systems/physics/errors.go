package physics

import "errors"

// Kernel-specific errors
var (
	ErrFrameRotation = errors.New("unsupported frame rotation")
	ErrNoCollision   = errors.New("collision step invoked without a classified collision")
)
