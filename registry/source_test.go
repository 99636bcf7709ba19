package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSource(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{"m/a.json": {Data: []byte("{}")}}}

	data, err := src.Fetch(context.Background(), "m/a.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = src.Fetch(context.Background(), "m/b.json")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrManifestFetch))
}

func TestHTTPSourceRegistersRemoteManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/characters.json":
			_, _ = w.Write([]byte(characterManifest))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL + "/assets", Client: srv.Client()}
	x := NewIndex(zerolog.Nop())

	require.NoError(t, x.RegisterFrom(context.Background(), src, Ref{Name: "characters", Path: "characters.json"}))
	assert.Equal(t, 2, x.Len())

	err := x.RegisterFrom(context.Background(), src, Ref{Name: "pirate", Path: "pirate.yaml"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrManifestFetch))
	assert.Equal(t, 2, x.Len())
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(characterManifest))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HTTPSource{BaseURL: srv.URL}.Fetch(ctx, "characters.json")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrManifestFetch))
}
