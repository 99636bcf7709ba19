package tags

import "github.com/yohamta/donburi"

var (
	Character        = donburi.NewTag().SetName("Character")
	Controlled       = donburi.NewTag().SetName("Controlled")
	Platform         = donburi.NewTag().SetName("Platform")
	FloatingPlatform = donburi.NewTag().SetName("FloatingPlatform")
	Wall             = donburi.NewTag().SetName("Wall")
)

// Resolv tags for physics collision
const (
	ResolvSolid     = "solid"
	ResolvPlatform  = "platform"
	ResolvCharacter = "character"
)
