package voice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"shopsmith/internal/config"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
	"shopsmith/internal/services/elevenlabs"
)

// Synthesizer is the provider surface the runner depends on.
type Synthesizer interface {
	Synthesize(ctx context.Context, voiceID, text string, settings elevenlabs.VoiceSettings) ([]byte, error)
}

// Result describes one synthesized utterance on disk.
type Result struct {
	Name  string
	Path  string
	Bytes int
}

// SynthesizeAll synthesizes every configured utterance into
// <output_dir>/voice/<name>.mp3, overwriting previous output. Calls run
// through a bounded group; the default limit of one keeps them sequential.
// The first provider error cancels the remaining calls and fails the run.
func SynthesizeAll(ctx context.Context, cfg *config.Config, client Synthesizer, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "voice")

	if len(cfg.Voice.Utterances) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "voice", "synth",
			"no utterances configured; add [[voice.utterances]] entries", nil)
	}

	outDir := filepath.Join(cfg.Paths.OutputDir, "voice")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create voice output directory: %w", err)
	}

	results := make([]Result, len(cfg.Voice.Utterances))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Voice.Concurrency)

	for i, utterance := range cfg.Voice.Utterances {
		group.Go(func() error {
			profile := cfg.Voice.Profiles[utterance.Profile]
			audio, err := client.Synthesize(groupCtx, profile.VoiceID, utterance.Text, Settings(profile))
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, utterance.Name+".mp3")
			if err := os.WriteFile(path, audio, 0o644); err != nil {
				return fmt.Errorf("write audio %s: %w", path, err)
			}
			results[i] = Result{Name: utterance.Name, Path: path, Bytes: len(audio)}
			log.Info("utterance synthesized",
				logging.String("utterance", utterance.Name),
				logging.String("profile", utterance.Profile),
				logging.Int("bytes", len(audio)),
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Settings converts a configured profile into the provider wire format.
func Settings(profile config.VoiceProfile) elevenlabs.VoiceSettings {
	return elevenlabs.VoiceSettings{
		Stability:       profile.Stability,
		SimilarityBoost: profile.SimilarityBoost,
		Style:           profile.Style,
		UseSpeakerBoost: profile.SpeakerBoost,
	}
}
