package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFromFS(t *testing.T) {
	f := New(Options{FS: fstest.MapFS{
		"sprites/player.png": {Data: []byte("png")},
	}})
	out := make(chan Result, 1)

	f.Fetch(context.Background(), Job{ID: "player", URL: "sprites/player.png"}, out)

	r := <-out
	require.NoError(t, r.Err)
	assert.Equal(t, "player", r.Job.ID)
	assert.Equal(t, []byte("png"), r.Data)
}

func TestFetchMissingFileReportsError(t *testing.T) {
	f := New(Options{FS: fstest.MapFS{}})
	out := make(chan Result, 1)

	f.Fetch(context.Background(), Job{ID: "gone", URL: "gone.png"}, out)

	r := <-out
	assert.Error(t, r.Err)
	assert.Equal(t, "gone", r.Job.ID)
}

func TestFetchOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/hit.wav" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL + "/assets", Timeout: time.Second})
	out := make(chan Result, 2)

	f.Fetch(context.Background(), Job{ID: "hit", URL: "/hit.wav", Sound: true}, out)
	f.Fetch(context.Background(), Job{ID: "miss", URL: "miss.wav", Sound: true}, out)

	hit := <-out
	require.NoError(t, hit.Err)
	assert.Equal(t, []byte("RIFF"), hit.Data)
	assert.True(t, hit.Job.Sound)

	miss := <-out
	assert.Error(t, miss.Err)
}

func TestFetchReturnsAfterCancelWithNoReader(t *testing.T) {
	f := New(Options{FS: fstest.MapFS{
		"a.png": {Data: []byte("a")},
	}})
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Result)

	done := make(chan struct{})
	go func() {
		f.Fetch(ctx, Job{ID: "a", URL: "a.png"}, out)
		close(done)
	}()
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestFetchCancelledWhileWaitingForSlot(t *testing.T) {
	f := New(Options{FS: fstest.MapFS{
		"a.png": {Data: []byte("a")},
	}, MaxConcurrent: 1})
	require.True(t, f.sem.TryAcquire(1))

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Result, 1)
	done := make(chan struct{})
	go func() {
		f.Fetch(ctx, Job{ID: "a", URL: "a.png"}, out)
		close(done)
	}()
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	f.sem.Release(1)
}
