package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/automoto/spriteforge/engine/enginetest"
	"github.com/automoto/spriteforge/registry"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T, ids ...string) *registry.Index {
	t.Helper()
	assets := make([]registry.Descriptor, 0, len(ids))
	for _, id := range ids {
		url := "images/" + id + ".png"
		if id == "sfx_jump" {
			url = "audio/jump.wav"
		}
		assets = append(assets, registry.Descriptor{ID: id, URL: url})
	}
	x := registry.NewIndex(zerolog.Nop())
	x.RegisterManifest("test", &registry.Manifest{Categories: map[string]registry.Category{
		"all": {Count: len(assets), Assets: assets},
	}})
	return x
}

func newCoordinator(t *testing.T, ids ...string) (*Coordinator, *enginetest.Engine, *Ledger) {
	t.Helper()
	eng := enginetest.New()
	ledger := NewLedger()
	return NewCoordinator(newIndex(t, ids...), eng, ledger, zerolog.Nop()), eng, ledger
}

func TestLoadRequiredIssuesEachIDOnce(t *testing.T) {
	c, eng, ledger := newCoordinator(t, "a", "b", "c")

	first := c.LoadRequired(map[string][]string{
		"idle": {"a", "b"},
		"walk": {"b", "c"},
	})
	assert.Equal(t, []string{"a", "b", "c"}, first.Requested)
	assert.Equal(t, []string{"a", "b", "c"}, first.Issued)
	assert.Equal(t, 1, eng.Starts)
	assert.False(t, first.Completed())

	// Ids are in the ledger before the engine finishes.
	assert.True(t, ledger.InFlight("a"))

	second := c.LoadRequired(map[string][]string{"again": {"a", "c"}})
	assert.Empty(t, second.Issued)
	assert.False(t, second.Completed(), "in-flight ids still have to finish")

	eng.Drain()
	assert.True(t, first.Completed())
	assert.True(t, second.Completed())

	third := c.LoadRequired(map[string][]string{"later": {"a", "b", "c"}})
	assert.True(t, third.Completed())
	assert.Empty(t, third.Issued)

	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, 1, eng.RequestCount(id), id)
		assert.True(t, ledger.Loaded(id), id)
	}
	assert.Equal(t, 1, eng.Starts)
}

func TestGenerationsDoNotLeak(t *testing.T) {
	c, eng, _ := newCoordinator(t, "a", "b")

	first := c.LoadRequired(map[string][]string{"g": {"a"}})
	eng.Drain()
	require.True(t, first.Completed())

	second := c.LoadRequired(map[string][]string{"g": {"b"}})
	assert.Equal(t, uint64(2), second.Generation)
	assert.False(t, second.Completed(), "a drain that happened before issue must not complete it")

	eng.Drain()
	assert.True(t, second.Completed())
	assert.Equal(t, uint64(2), c.Generation())
}

func TestMissingIDsAreWarningsNotFailures(t *testing.T) {
	c, eng, _ := newCoordinator(t, "a")

	b := c.LoadRequired(map[string][]string{"g": {"a", "ghost"}})
	assert.Equal(t, []string{"a"}, b.Issued)

	eng.Drain()
	require.True(t, b.Completed())
	assert.Equal(t, []string{"a"}, b.Loaded())

	warnings := b.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "ghost", warnings[0].ID)
	assert.Equal(t, AssetNotFound, warnings[0].Kind)
	assert.True(t, eris.Is(warnings[0].Err, registry.ErrAssetNotFound))
}

func TestOnlyMissingIDsCompletesImmediately(t *testing.T) {
	c, eng, _ := newCoordinator(t)

	b := c.LoadRequired(map[string][]string{"g": {"ghost"}})
	assert.True(t, b.Completed())
	assert.Zero(t, eng.Starts)
	assert.Len(t, b.Warnings(), 1)
}

func TestEngineFailureIsRetryable(t *testing.T) {
	c, eng, ledger := newCoordinator(t, "a", "b")
	eng.Fail("b", errors.New("404"))

	b := c.LoadRequired(map[string][]string{"g": {"a", "b"}})
	eng.Drain()

	require.True(t, b.Completed())
	assert.Equal(t, []string{"a"}, b.Loaded())
	warnings := b.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, EngineLoadFailure, warnings[0].Kind)
	assert.True(t, eris.Is(warnings[0].Err, ErrEngineLoad))
	assert.False(t, ledger.Requested("b"))

	retry := c.LoadRequired(map[string][]string{"g": {"a", "b"}})
	assert.Equal(t, []string{"b"}, retry.Issued)
	assert.Equal(t, 2, eng.RequestCount("b"))
	assert.Equal(t, 1, eng.RequestCount("a"))
}

func TestFailureReachesEveryWaitingBatch(t *testing.T) {
	c, eng, _ := newCoordinator(t, "a")
	eng.Fail("a", errors.New("decode"))

	first := c.LoadRequired(map[string][]string{"g": {"a"}})
	second := c.LoadRequired(map[string][]string{"g": {"a"}})
	eng.Drain()

	assert.Len(t, first.Warnings(), 1)
	assert.Len(t, second.Warnings(), 1)
	assert.Empty(t, second.Loaded())
}

func TestSoundsUseTheSoundQueue(t *testing.T) {
	c, eng, _ := newCoordinator(t, "sfx_jump", "a")

	c.LoadRequired(map[string][]string{"audio": {"sfx_jump"}, "images": {"a"}})
	require.Len(t, eng.Requests, 2)
	assert.True(t, eng.Requests[0].Sound)
	assert.Equal(t, "audio/jump.wav", eng.Requests[0].URL)
	assert.False(t, eng.Requests[1].Sound)
}

func TestOnCompleteAndWait(t *testing.T) {
	c, eng, _ := newCoordinator(t, "a")

	b := c.LoadRequired(map[string][]string{"g": {"a"}})
	var calls int
	b.OnComplete(func(*Batch) { calls++ })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Wait(ctx), context.DeadlineExceeded)

	eng.Drain()
	assert.Equal(t, 1, calls)
	require.NoError(t, b.Wait(context.Background()))

	b.OnComplete(func(*Batch) { calls++ })
	assert.Equal(t, 2, calls, "callbacks registered after completion run immediately")

	eng.Drain()
	assert.Equal(t, 2, calls)
}

func TestCallbackMayIssueNewBatch(t *testing.T) {
	c, eng, _ := newCoordinator(t, "a", "b")

	var followUp *Batch
	c.LoadRequired(map[string][]string{"g": {"a"}}).OnComplete(func(*Batch) {
		followUp = c.LoadRequired(map[string][]string{"g": {"b"}})
	})
	eng.Drain()
	require.NotNil(t, followUp)
	assert.False(t, followUp.Completed())
	assert.Equal(t, []string{"b"}, eng.Pending())

	eng.Drain()
	assert.True(t, followUp.Completed())
}
