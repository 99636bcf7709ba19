package registry

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const characterManifest = `{
  "version": "1.0",
  "categories": {
    "player_characters": {
      "count": 2,
      "assets": [
        {"id": "player_idle", "url": "images/characters/player_idle.png"},
        {"id": "player_walk1", "url": "images/characters/player_walk1.png", "metadata": {"frame": 1}}
      ]
    }
  },
  "usage": {"assetCount": 2, "animationSets": {"walk": ["walk1", "walk2"]}}
}`

func TestDecodeManifestJSON(t *testing.T) {
	m, err := DecodeManifest([]byte(characterManifest), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "1.0", m.Version)
	require.Contains(t, m.Categories, "player_characters")
	c := m.Categories["player_characters"]
	assert.Equal(t, 2, c.Count)
	require.Len(t, c.Assets, 2)
	assert.Equal(t, "player_walk1", c.Assets[1].ID)
	assert.EqualValues(t, 1, c.Assets[1].Metadata["frame"])
	require.NotNil(t, m.Usage)
	assert.Equal(t, []string{"walk1", "walk2"}, m.Usage.AnimationSets["walk"])
}

func TestDecodeManifestYAML(t *testing.T) {
	doc := `
version: "2"
categories:
  ships:
    count: 1
    assets:
      - id: ship_pirate_large
        url: images/pirate/ship_pirate_large.png
`
	m, err := DecodeManifest([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"ships"}, m.CategoryNames())
	assert.Equal(t, "images/pirate/ship_pirate_large.png", m.Categories["ships"].Assets[0].URL)
}

func TestDecodeManifestRejectsIncompleteAssets(t *testing.T) {
	tests := map[string]string{
		"malformed":     `{"categories": [}`,
		"no categories": `{"version": "1"}`,
		"missing id":    `{"categories": {"a": {"assets": [{"url": "x.png"}]}}}`,
		"missing url":   `{"categories": {"a": {"assets": [{"id": "x"}]}}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeManifest([]byte(doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrManifestDecode))
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("manifests/pirate.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("https://cdn.example.com/a.YML?v=3"))
	assert.Equal(t, FormatJSON, FormatFor("manifests/characters.json"))
	assert.Equal(t, FormatJSON, FormatFor("manifest"))
}
