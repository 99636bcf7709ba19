package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// EnvPrefix is prepended to every environment variable read into Settings.
const EnvPrefix = "SPRITEFORGE_"

// Settings holds process configuration read from the environment.
type Settings struct {
	// Manifests are registered in order; the first manifest to declare an id owns it.
	Manifests []string `env:"MANIFESTS" envSeparator:"," envDefault:"manifests/characters.json,manifests/platformer.json,manifests/pirate.yaml"`
	// ManifestBaseURL switches manifest fetching from the embedded files to HTTP.
	ManifestBaseURL string        `env:"MANIFEST_BASE_URL"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"5s"`

	Level           string      `env:"LEVEL" envDefault:"levels/demo.tmx"`
	PlayerArchetype ArchetypeID `env:"PLAYER_ARCHETYPE" envDefault:"player"`

	// LoadsPerFrame caps how many queued resources the engine decodes per frame.
	LoadsPerFrame int `env:"LOADS_PER_FRAME" envDefault:"8"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	Debug     bool   `env:"DEBUG"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{Prefix: EnvPrefix})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return s, eris.Wrap(err, "failed to parse environment variables")
	}
	if s.LoadsPerFrame <= 0 {
		return s, eris.Errorf("%sLOADS_PER_FRAME must be positive, got %d", EnvPrefix, s.LoadsPerFrame)
	}
	if _, ok := Archetypes[s.PlayerArchetype]; !ok {
		return s, eris.Errorf("%sPLAYER_ARCHETYPE %q is not a known archetype", EnvPrefix, s.PlayerArchetype)
	}
	return s, nil
}
