package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ListingsDir   string `toml:"listings_dir"`
	OutputDir     string `toml:"output_dir"`
	StagingDir    string `toml:"staging_dir"`
	LogDir        string `toml:"log_dir"`
	AssetsDir     string `toml:"assets_dir"`
	MigrationsDir string `toml:"migrations_dir"`
}

// Listing contains configuration for the spreadsheet export.
type Listing struct {
	IDs           []string `toml:"ids"`
	OutputFile    string   `toml:"output_file"`
	Quantity      int      `toml:"quantity"`
	Category      string   `toml:"category"`
	DefaultPrice  string   `toml:"default_price"`
	ShopSKUPrefix string   `toml:"shop_sku_prefix"`
}

// VoiceProfile is a named set of synthesis tuning parameters passed to the
// TTS provider together with the provider-side voice identifier.
type VoiceProfile struct {
	VoiceID         string  `toml:"voice_id"`
	Stability       float64 `toml:"stability"`
	SimilarityBoost float64 `toml:"similarity_boost"`
	Style           float64 `toml:"style"`
	SpeakerBoost    bool    `toml:"speaker_boost"`
}

// Utterance is one text snippet to synthesize with a named profile.
type Utterance struct {
	Name    string `toml:"name"`
	Text    string `toml:"text"`
	Profile string `toml:"profile"`
}

// Voice contains configuration for TTS synthesis.
type Voice struct {
	BaseURL        string                  `toml:"base_url"`
	Model          string                  `toml:"model"`
	TimeoutSeconds int                     `toml:"timeout_seconds"`
	Concurrency    int                     `toml:"concurrency"`
	Profiles       map[string]VoiceProfile `toml:"profiles"`
	Utterances     []Utterance             `toml:"utterances"`
}

// Poster contains configuration for marketing image composition.
type Poster struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FontPath   string `toml:"font_path"`
	Title      string `toml:"title"`
	Subtitle   string `toml:"subtitle"`
	PhotoFile  string `toml:"photo_file"`
	OutputFile string `toml:"output_file"`
}

// Segment is one named audio segment on a promo timeline. Durations are
// seconds; start offsets are derived, never configured.
type Segment struct {
	Name            string  `toml:"name"`
	DurationSeconds float64 `toml:"duration_seconds"`
}

// Template describes one promo video: the local page to capture, its
// resolution, capture rate and length, and the audio timeline.
type Template struct {
	Page            string    `toml:"page"`
	Width           int       `toml:"width"`
	Height          int       `toml:"height"`
	FrameRate       int       `toml:"frame_rate"`
	DurationSeconds float64   `toml:"duration_seconds"`
	AudioFile       string    `toml:"audio_file"`
	Segments        []Segment `toml:"segments"`
}

// Promo contains configuration for the frame-capture video assembler.
type Promo struct {
	FrameRate             int                 `toml:"frame_rate"`
	GapSeconds            float64             `toml:"gap_seconds"`
	BrowserBinary         string              `toml:"browser_binary"`
	CaptureTimeoutSeconds int                 `toml:"capture_timeout_seconds"`
	EncodeTimeoutSeconds  int                 `toml:"encode_timeout_seconds"`
	CRF                   int                 `toml:"crf"`
	Templates             map[string]Template `toml:"templates"`
}

// Backend contains non-secret settings for the hosted backend admin API.
type Backend struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ChatTable      string `toml:"chat_table"`
	SampleLimit    int    `toml:"sample_limit"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shopsmith.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Listing       Listing       `toml:"listing"`
	Voice         Voice         `toml:"voice"`
	Poster        Poster        `toml:"poster"`
	Promo         Promo         `toml:"promo"`
	Backend       Backend       `toml:"backend"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shopsmith/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shopsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories commands write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.StagingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the video encoder executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// TemplateNames returns the configured promo template names in sorted order.
func (c *Config) TemplateNames() []string {
	names := make([]string, 0, len(c.Promo.Templates))
	for name := range c.Promo.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
