package testsupport

import (
	"path/filepath"
	"testing"

	"shopsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ListingsDir = filepath.Join(base, "listings")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.MigrationsDir = filepath.Join(base, "migrations")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithListingIDs sets the configured listing ids on the test config.
func WithListingIDs(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Listing.IDs = ids
	}
}

// WithTemplate registers a promo template on the test config.
func WithTemplate(name string, template config.Template) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Promo.Templates == nil {
			b.cfg.Promo.Templates = map[string]config.Template{}
		}
		b.cfg.Promo.Templates[name] = template
	}
}

// WithUtterances sets the voice utterances and a single default profile.
func WithUtterances(utterances ...config.Utterance) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Voice.Profiles == nil {
			b.cfg.Voice.Profiles = map[string]config.VoiceProfile{}
		}
		if _, ok := b.cfg.Voice.Profiles["narrator"]; !ok {
			b.cfg.Voice.Profiles["narrator"] = config.VoiceProfile{
				VoiceID:         "test-voice",
				Stability:       0.5,
				SimilarityBoost: 0.75,
			}
		}
		b.cfg.Voice.Utterances = utterances
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
