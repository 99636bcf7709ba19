package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/lafriks/go-tiled"
	"github.com/rotisserie/eris"
)

var (
	//go:embed all:manifests all:images all:audio all:levels all:shaders
	assetFS embed.FS
)

// FS exposes the embedded default manifests and every file they point at.
func FS() fs.FS {
	return assetFS
}

// Shader returns the source of an embedded Kage shader.
func Shader(name string) ([]byte, error) {
	src, err := assetFS.ReadFile(path.Join("shaders", name+".kage"))
	if err != nil {
		return nil, eris.Wrapf(err, "shader %s", name)
	}
	return src, nil
}

// Rect is an axis-aligned area in level coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

type FloatingPlatform struct {
	Rect
	Travel  float64 // how far the platform rises, in pixels
	Seconds float32 // duration of one leg
}

type CharacterSpawn struct {
	Name       string
	X, Y       float64
	Archetype  string
	Controlled bool
	Speed      float64 // zero keeps the archetype default
}

// Prop is a static decoration showing a single registered image.
type Prop struct {
	X, Y  float64
	Asset string
}

type Level struct {
	Name              string
	Title             string
	Width             int
	Height            int
	Solids            []Rect
	Platforms         []Rect
	FloatingPlatforms []FloatingPlatform
	Spawns            []CharacterSpawn
	Props             []Prop
}

// LoadLevel parses a Tiled map from the embedded levels.
func LoadLevel(levelPath string) (*Level, error) {
	return LoadLevelFS(assetFS, levelPath)
}

// LoadLevelFS parses a Tiled map from fsys. Only object groups are read:
// "Solids", "Platforms", "FloatingPlatforms", "CharacterSpawn" and "Props".
func LoadLevelFS(fsys fs.FS, levelPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(levelPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, eris.Wrapf(err, "load level %s", levelPath)
	}

	level := &Level{
		Name:   levelPath,
		Width:  levelMap.Width * levelMap.TileWidth,
		Height: levelMap.Height * levelMap.TileHeight,
	}
	if levelMap.Properties != nil {
		level.Title = levelMap.Properties.GetString("title")
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Solids":
			for _, o := range og.Objects {
				level.Solids = append(level.Solids, rectOf(o))
			}
		case "Platforms":
			for _, o := range og.Objects {
				level.Platforms = append(level.Platforms, rectOf(o))
			}
		case "FloatingPlatforms":
			for _, o := range og.Objects {
				seconds := o.Properties.GetFloat("seconds")
				if seconds <= 0 {
					seconds = 2
				}
				level.FloatingPlatforms = append(level.FloatingPlatforms, FloatingPlatform{
					Rect:    rectOf(o),
					Travel:  o.Properties.GetFloat("travel"),
					Seconds: float32(seconds),
				})
			}
		case "CharacterSpawn":
			for _, o := range og.Objects {
				level.Spawns = append(level.Spawns, CharacterSpawn{
					Name:       o.Name,
					X:          o.X,
					Y:          o.Y,
					Archetype:  o.Properties.GetString("archetype"),
					Controlled: o.Properties.GetBool("controlled"),
					Speed:      o.Properties.GetFloat("speed"),
				})
			}
			// Sort spawns by X position (left to right) so entity creation order is stable
			sort.SliceStable(level.Spawns, func(i, j int) bool {
				return level.Spawns[i].X < level.Spawns[j].X
			})
		case "Props":
			for _, o := range og.Objects {
				level.Props = append(level.Props, Prop{
					X:     o.X,
					Y:     o.Y,
					Asset: o.Properties.GetString("asset"),
				})
			}
		}
	}

	if len(level.Solids) == 0 {
		return nil, eris.Errorf("level %s has no solids", levelPath)
	}
	return level, nil
}

func rectOf(o *tiled.Object) Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// PropAssets lists the distinct assets the level's props use.
func (l *Level) PropAssets() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, p := range l.Props {
		if p.Asset == "" || seen[p.Asset] {
			continue
		}
		seen[p.Asset] = true
		ids = append(ids, p.Asset)
	}
	return ids
}

// Controlled returns the spawn driven by the keyboard, if any.
func (l *Level) Controlled() (CharacterSpawn, bool) {
	for _, s := range l.Spawns {
		if s.Controlled {
			return s, true
		}
	}
	return CharacterSpawn{}, false
}
