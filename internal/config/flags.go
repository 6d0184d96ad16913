package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging and the physics overlay")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagTrees     = flag.Int("trees", -1, "Number of trees to scatter")
	flagSeed      = flag.Int64("seed", 0, "Tree placement seed")
	flagMute      = flag.Bool("mute", false, "Disable audio")
	flagCharacter = flag.String("character", "", "Path to the character model")
	flagSave      = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Overlay = true
		cfg.Debug.ShowFPS = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagTrees >= 0 {
		cfg.World.TreeCount = *flagTrees
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagCharacter != "" {
		cfg.Assets.CharacterModel = *flagCharacter
	}
}
