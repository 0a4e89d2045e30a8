package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ServerConfig struct {
	URL string `toml:"url"`
}

type FarmConfig struct {
	Latitude  *float64 `toml:"latitude"`
	Longitude *float64 `toml:"longitude"`
	CropType  string   `toml:"crop_type"`
}

type UserConfig struct {
	Server       ServerConfig `toml:"server"`
	Farm         FarmConfig   `toml:"farm"`
	Language     string       `toml:"language,omitempty"`
	SpeakReplies bool         `toml:"speak_replies"`
}

type Config struct {
	DataDirectory string
	ServerURL     string
	Latitude      *float64
	Longitude     *float64
	CropType      string
	Language      string
	SpeakReplies  bool
	Keybindings   *KeyBindingsConfig
}

var Debug = false
var DebugLog *log.Logger

// DefaultServerURL is used when neither config nor environment names a
// backend.
const DefaultServerURL = "http://localhost:8000"

func (c *Config) APIBaseURL() string {
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return c.ServerURL
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// HasLocation reports whether the farm coordinates are configured.
// Weather and risk features stay dormant without them.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

func (c *Config) Location() (float64, float64) {
	if !c.HasLocation() {
		return 0, 0
	}
	return *c.Latitude, *c.Longitude
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("AGRIGUARD_API_URL"); url != "" {
		c.ServerURL = url
	}
	if lang := os.Getenv("AGRIGUARD_LANGUAGE"); lang != "" {
		c.Language = lang
	}
	if dataDir := os.Getenv("AGRIGUARD_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if lat := os.Getenv("AGRIGUARD_LATITUDE"); lat != "" {
		if v, err := strconv.ParseFloat(lat, 64); err == nil {
			c.Latitude = &v
		}
	}
	if lon := os.Getenv("AGRIGUARD_LONGITUDE"); lon != "" {
		if v, err := strconv.ParseFloat(lon, 64); err == nil {
			c.Longitude = &v
		}
	}
}

func CheckDebug() bool {
	debug := os.Getenv("AGRIGUARD_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (AGRIGUARD_DEBUG=%s) ===", os.Getenv("AGRIGUARD_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}

	cfg := &Config{
		DataDirectory: systemCfg.DataDirectory,
		ServerURL:     DefaultServerURL,
	}

	// The data directory override must apply before the user config is
	// read from it.
	if dataDir := os.Getenv("AGRIGUARD_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if userCfg.Server.URL != "" {
		cfg.ServerURL = userCfg.Server.URL
	}
	cfg.Latitude = userCfg.Farm.Latitude
	cfg.Longitude = userCfg.Farm.Longitude
	cfg.CropType = userCfg.Farm.CropType
	cfg.Language = userCfg.Language
	cfg.SpeakReplies = userCfg.SpeakReplies

	keybindings, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = keybindings

	cfg.applyEnvOverrides()

	return cfg, nil
}
