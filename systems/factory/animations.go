package factory

import (
	"slices"

	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/engine"
	"github.com/rotisserie/eris"
)

// Catalog is the animation set of one archetype, restricted to the
// animations whose frames are all available.
type Catalog struct {
	Archetype cfg.ArchetypeConfig
	States    map[cfg.StateID]string
	Actions   map[cfg.ActionKind]string
	Specs     []engine.AnimationSpec
	// Frames lists every frame id the specs use, idle first.
	Frames []string
	Sounds []string
}

// BuildCatalog resolves the archetype's declared animations against has,
// which reports whether a resource id is available. States without their
// own animation fall back per cfg.StateAnimations. The idle animation is
// mandatory.
func BuildCatalog(arch cfg.ArchetypeConfig, has func(id string) bool) (*Catalog, error) {
	c := &Catalog{
		Archetype: arch,
		States:    make(map[cfg.StateID]string),
		Actions:   make(map[cfg.ActionKind]string),
	}

	available := make(map[string]string)
	for _, name := range arch.Animations {
		def, ok := cfg.Animations[name]
		if !ok {
			continue
		}
		frames := make([]string, 0, len(def.Frames))
		for _, suffix := range def.Frames {
			frames = append(frames, cfg.FrameID(arch.ID, suffix))
		}
		if !all(frames, has) {
			continue
		}

		engineName := cfg.AnimationName(arch.ID, name)
		available[name] = engineName
		c.Specs = append(c.Specs, engine.AnimationSpec{
			Name:      engineName,
			Frames:    frames,
			FrameRate: def.FrameRate,
			Repeat:    def.Repeat,
		})
		for _, f := range frames {
			if !slices.Contains(c.Frames, f) {
				c.Frames = append(c.Frames, f)
			}
		}
	}

	if _, ok := available[cfg.AnimIdle]; !ok {
		return nil, eris.Wrapf(ErrUnknownArchetype, "%s has no idle frames", arch.ID)
	}
	// idle first so the spawn texture is always part of the first group
	idle := arch.IdleResource()
	c.Frames = append([]string{idle}, slices.DeleteFunc(c.Frames, func(f string) bool { return f == idle })...)

	for state, prefs := range cfg.StateAnimations {
		for _, name := range prefs {
			if engineName, ok := available[name]; ok {
				c.States[state] = engineName
				break
			}
		}
	}
	for kind := cfg.ActionAttack; kind < cfg.ActionCount; kind++ {
		if engineName, ok := available[cfg.Actions[kind].Animation]; ok {
			c.Actions[kind] = engineName
		}
	}

	for _, sound := range soundIDs(arch) {
		if has(sound) {
			c.Sounds = append(c.Sounds, sound)
		}
	}
	return c, nil
}

// Requirements groups every resource id the catalog needs for a load batch.
func (c *Catalog) Requirements() map[string][]string {
	req := map[string][]string{"frames": c.Frames}
	if len(c.Sounds) > 0 {
		req["sounds"] = c.Sounds
	}
	return req
}

// Apply replaces the catalog maps of a, keeping its facing and, when still
// available, its current animation.
func (c *Catalog) Apply(a *components.AnimationData, state cfg.StateID, action cfg.ActionKind) {
	a.States = c.States
	a.Actions = c.Actions
	if name, ok := a.Lookup(state, action); ok {
		a.Current = name
		return
	}
	a.Current = c.States[cfg.Idle]
}

func soundIDs(arch cfg.ArchetypeConfig) []string {
	ids := make([]string, 0, len(arch.Sounds))
	for _, id := range arch.Sounds {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func all(ids []string, has func(string) bool) bool {
	for _, id := range ids {
		if !has(id) {
			return false
		}
	}
	return true
}
