package starlight

// Frame holds the per-frame inputs the renderer collaborator supplies to the
// morph engine: elapsed time, pixel ratio and the current camera azimuth,
// plus the viewport size in pixels (or cells for the terminal).
type Frame struct {
	Elapsed    float64
	PixelRatio float64
	Azimuth    float64
	Width      int
	Height     int
	// Sampled is false until the orbit system has written a real azimuth.
	Sampled bool
}

// Aspect returns width/height, or 1 for an empty viewport.
func (f *Frame) Aspect() float32 {
	if f.Width <= 0 || f.Height <= 0 {
		return 1
	}
	return float32(f.Width) / float32(f.Height)
}
