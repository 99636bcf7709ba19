package main

import (
	"fmt"
	"os"

	"github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/fonts"
	"github.com/automoto/spriteforge/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(settings.LogLevel, settings.LogPretty)

	if err := fonts.LoadDefaults(config.UI.HUDFontSize); err != nil {
		logger.Fatal().Err(err).Msg("failed to load fonts")
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("spriteforge")
	ebiten.SetTPS(config.C.TPS)

	world := scenes.NewWorldScene(settings, logger, audio.NewContext(config.Audio.SampleRate))
	defer world.Close()

	if err := ebiten.RunGame(&Game{scene: world}); err != nil {
		logger.Error().Err(err).Msg("game stopped")
		world.Close()
		os.Exit(1)
	}
}
