package config

import "image/color"

// PhysicsConfig contains physics-related configuration values.
// Velocities are in pixels per second, accelerations in pixels per second squared.
type PhysicsConfig struct {
	Gravity      float64
	MaxFallSpeed float64
	MaxRiseSpeed float64

	// GroundReach is how far below its feet an object looks for ground contact.
	GroundReach float64
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows the controlled character (0.0-1.0)
}

// AudioConfig contains sound playback settings
type AudioConfig struct {
	SampleRate int
	SFXVolume  float64 // 0.0-1.0
}

// UIConfig contains HUD configuration values
type UIConfig struct {
	HUDTextColor   color.RGBA
	HUDPanelColor  color.RGBA
	HUDLineHeight  int
	HUDMargin      int
	HUDFontSize    float64
	DebugSolidTint color.RGBA

	// HurtTint is applied over sprites of characters in the hurt state.
	HurtTint [4]float32
}

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	TPS    int
}

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Camera CameraConfig
var UI UIConfig
var Audio AudioConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	SkyBlue      = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	Grey         = color.RGBA{R: 100, G: 100, B: 100, A: 255}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
		TPS:    60,
	}

	Physics = PhysicsConfig{
		Gravity:      900,
		MaxFallSpeed: 600,
		MaxRiseSpeed: -600,
		GroundReach:  1,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
	}

	Audio = AudioConfig{
		SampleRate: 44100,
		SFXVolume:  0.6,
	}

	UI = UIConfig{
		HUDTextColor:   White,
		HUDPanelColor:  BlackOverlay,
		HUDLineHeight:  14,
		HUDMargin:      8,
		HUDFontSize:    11,
		DebugSolidTint: Grey,
		HurtTint:       [4]float32{1, 0.2, 0.2, 0.6},
	}
}
