package components

import (
	"github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/engine"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

type CharacterData struct {
	ID        uuid.UUID
	Archetype config.ArchetypeID
	Tunables  config.Tunables

	// Sprite is owned by this character; NoSprite until its resources load.
	Sprite engine.SpriteID
	Ready  bool
}

var Character = donburi.NewComponentType[CharacterData]()
