// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Player   PlayerConfig   `yaml:"player"`
	Camera   CameraConfig   `yaml:"camera"`
	Physics  PhysicsConfig  `yaml:"physics"`
	World    WorldConfig    `yaml:"world"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Shadows      bool    `yaml:"shadows"`
	SunAzimuth   float32 `yaml:"sun_azimuth"`   // degrees around +Y
	SunElevation float32 `yaml:"sun_elevation"` // degrees above the horizon
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

// PlayerConfig holds character movement settings.
type PlayerConfig struct {
	MoveSpeed float32    `yaml:"move_speed"` // world units per frame per held direction
	Spawn     [3]float32 `yaml:"spawn"`
}

// CameraConfig holds the third-person rig settings.
type CameraConfig struct {
	Distance    float32 `yaml:"distance"`
	Height      float32 `yaml:"height"`
	Sensitivity float32 `yaml:"sensitivity"` // radians per pixel of horizontal drag
	FovDegrees  float32 `yaml:"fov_degrees"`
}

// PhysicsConfig holds simulation settings.
type PhysicsConfig struct {
	Timestep        float32 `yaml:"timestep"`
	Gravity         float32 `yaml:"gravity"`
	CharacterMass   float32 `yaml:"character_mass"`
	CharacterRadius float32 `yaml:"character_radius"`
	LinearDamping   float32 `yaml:"linear_damping"`
}

// WorldConfig controls scene construction.
type WorldConfig struct {
	Size       float32 `yaml:"size"` // ground plane edge length
	TreeCount  int     `yaml:"tree_count"`
	Seed       int64   `yaml:"seed"`
	ClearRange float32 `yaml:"clear_range"` // no trees within this radius of spawn
}

// AssetsConfig holds asset file paths.
type AssetsConfig struct {
	CharacterModel string `yaml:"character_model"`
	TreeModel      string `yaml:"tree_model"`
	AmbientTrack   string `yaml:"ambient_track"`
	FootstepSound  string `yaml:"footstep_sound"`
}

// DebugConfig toggles diagnostics.
type DebugConfig struct {
	Overlay       bool   `yaml:"overlay"`
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			Shadows:      true,
			SunAzimuth:   45,
			SunElevation: 60,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			MusicVolume:  0.5,
			SFXVolume:    0.8,
		},
		Player: PlayerConfig{
			MoveSpeed: 0.1,
		},
		Camera: CameraConfig{
			Distance:    5,
			Height:      2,
			Sensitivity: 0.01,
			FovDegrees:  75,
		},
		Physics: PhysicsConfig{
			Timestep:        1.0 / 60.0,
			Gravity:         -9.82,
			CharacterMass:   1,
			CharacterRadius: 0.5,
			LinearDamping:   0.9,
		},
		World: WorldConfig{
			Size:       100,
			TreeCount:  20,
			Seed:       1,
			ClearRange: 4,
		},
		Assets: AssetsConfig{
			CharacterModel: "assets/models/character.glb",
			TreeModel:      "assets/models/tree.glb",
			AmbientTrack:   "assets/audio/forest.wav",
			FootstepSound:  "assets/audio/footstep.wav",
		},
		Debug: DebugConfig{
			Overlay:       false,
			ShowFPS:       false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the frame loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.Timestep <= 0 {
		errs = append(errs, fmt.Errorf("physics.timestep must be positive, got %v", c.Physics.Timestep))
	}
	if c.Player.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("player.move_speed must be positive, got %v", c.Player.MoveSpeed))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance))
	}
	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera.sensitivity must be positive, got %v", c.Camera.Sensitivity))
	}
	if c.World.TreeCount < 0 {
		errs = append(errs, fmt.Errorf("world.tree_count must not be negative, got %d", c.World.TreeCount))
	}
	if c.Graphics.SunElevation <= 0 || c.Graphics.SunElevation > 90 {
		errs = append(errs, fmt.Errorf("graphics.sun_elevation must be in (0, 90], got %v", c.Graphics.SunElevation))
	}
	if c.World.Size <= 0 {
		errs = append(errs, fmt.Errorf("world.size must be positive, got %v", c.World.Size))
	}
	return errors.Join(errs...)
}
