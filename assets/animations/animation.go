package animations

// Animation steps through a list of frame ids at a fixed rate. It is
// advanced once per simulation tick.
type Animation struct {
	Name          string
	Frames        []string
	TicksPerFrame float64
	Repeat        int // extra passes after the first; negative loops forever

	frameCounter float64
	frame        int
	pass         int
	Finished     bool // set once the last pass shows its last frame; stays on it
}

// NewAnimation builds an animation playing frameRate frames per second in a
// simulation running at tps ticks per second.
func NewAnimation(name string, frames []string, frameRate float64, repeat, tps int) *Animation {
	ticks := float64(tps)
	if frameRate > 0 {
		ticks = float64(tps) / frameRate
	}
	a := &Animation{
		Name:          name,
		Frames:        frames,
		TicksPerFrame: ticks,
		Repeat:        repeat,
	}
	a.Restart()
	return a
}

func (a *Animation) Update() {
	if a.Finished || len(a.Frames) == 0 {
		return
	}
	a.frameCounter -= 1.0
	if a.frameCounter > 0 {
		return
	}
	a.frameCounter += a.TicksPerFrame
	a.frame++
	if a.frame < len(a.Frames) {
		return
	}

	if a.Repeat < 0 || a.pass < a.Repeat {
		// loop back to the beginning
		a.pass++
		a.frame = 0
		return
	}
	a.frame = len(a.Frames) - 1
	a.Finished = true
}

// Frame returns the id of the frame to show.
func (a *Animation) Frame() string {
	if len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[a.frame]
}

// Index returns the position of the current frame.
func (a *Animation) Index() int {
	return a.frame
}

func (a *Animation) Restart() {
	a.frame = 0
	a.pass = 0
	a.frameCounter = a.TicksPerFrame
	a.Finished = false
}
