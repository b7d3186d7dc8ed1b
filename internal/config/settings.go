package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const appName = "albumrate"

// Settings holds all configuration options.
type Settings struct {
	// DataDir is where the ratings database and log file live.
	DataDir string `json:"data_dir"`

	// DatabaseFile is the ratings database filename inside DataDir.
	DatabaseFile string `json:"database_file"`

	// LogFile is the log filename inside DataDir.
	LogFile string `json:"log_file"`

	// MusicBrainzURL is the base URL of the MusicBrainz web service.
	MusicBrainzURL string `json:"musicbrainz_url"`

	// UserAgent identifies this client to MusicBrainz, which refuses
	// anonymous requests.
	UserAgent string `json:"user_agent"`

	// SearchLimit caps the number of artist search results.
	SearchLimit int `json:"search_limit"`

	// RequestTimeoutSeconds bounds every catalog and store call.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:               defaultDataDir(),
		DatabaseFile:          "ratings.db",
		LogFile:               appName + ".log",
		MusicBrainzURL:        "https://musicbrainz.org",
		UserAgent:             appName + "/1.0 (https://github.com/handiism/albumrate)",
		SearchLimit:           25,
		RequestTimeoutSeconds: 15,
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = home
	}
	return filepath.Join(dir, appName, "settings.json")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+appName)
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// DatabasePath returns the full path of the ratings database.
func (s *Settings) DatabasePath() string {
	return filepath.Join(s.DataDir, s.DatabaseFile)
}

// LogPath returns the full path of the log file.
func (s *Settings) LogPath() string {
	return filepath.Join(s.DataDir, s.LogFile)
}

// Timeout returns the per-request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}
