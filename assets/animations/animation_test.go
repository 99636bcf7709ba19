package animations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopingAnimation(t *testing.T) {
	a := NewAnimation("walk", []string{"w1", "w2"}, 6, -1, 60)
	assert.Equal(t, 10.0, a.TicksPerFrame)

	var shown []string
	for i := 0; i < 40; i++ {
		shown = append(shown, a.Frame())
		a.Update()
	}
	assert.Equal(t, "w1", shown[0])
	assert.Equal(t, "w1", shown[9])
	assert.Equal(t, "w2", shown[10])
	assert.Equal(t, "w1", shown[20])
	assert.False(t, a.Finished)
}

func TestFiniteAnimationHoldsLastFrame(t *testing.T) {
	a := NewAnimation("cheer", []string{"c1", "c2"}, 4, 2, 60)

	ticks := 0
	for !a.Finished && ticks < 1000 {
		a.Update()
		ticks++
	}
	// three passes of two frames at fifteen ticks each
	assert.Equal(t, 90, ticks)
	assert.Equal(t, "c2", a.Frame())

	a.Update()
	assert.Equal(t, "c2", a.Frame())

	a.Restart()
	assert.False(t, a.Finished)
	assert.Equal(t, "c1", a.Frame())
}

func TestEmptyAnimation(t *testing.T) {
	a := NewAnimation("none", nil, 1, 0, 60)
	a.Update()
	assert.Equal(t, "", a.Frame())
}
