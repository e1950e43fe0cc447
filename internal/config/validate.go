package config

import (
	"fmt"
	"strings"
)

// Validate checks structural configuration problems that would make every
// command misbehave. Per-command requirements (secrets, template existence)
// are checked where the command runs.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	for name, profile := range c.Voice.Profiles {
		if strings.TrimSpace(profile.VoiceID) == "" {
			return fmt.Errorf("voice.profiles.%s: voice_id is required", name)
		}
		if profile.Stability < 0 || profile.Stability > 1 {
			return fmt.Errorf("voice.profiles.%s: stability must be within [0, 1]", name)
		}
		if profile.SimilarityBoost < 0 || profile.SimilarityBoost > 1 {
			return fmt.Errorf("voice.profiles.%s: similarity_boost must be within [0, 1]", name)
		}
		if profile.Style < 0 || profile.Style > 1 {
			return fmt.Errorf("voice.profiles.%s: style must be within [0, 1]", name)
		}
	}

	for _, utterance := range c.Voice.Utterances {
		if strings.TrimSpace(utterance.Name) == "" {
			return fmt.Errorf("voice.utterances: every utterance needs a name")
		}
		if strings.TrimSpace(utterance.Text) == "" {
			return fmt.Errorf("voice.utterances.%s: text is required", utterance.Name)
		}
		if _, ok := c.Voice.Profiles[utterance.Profile]; !ok {
			return fmt.Errorf("voice.utterances.%s: unknown profile %q", utterance.Name, utterance.Profile)
		}
	}

	for name, tpl := range c.Promo.Templates {
		if strings.TrimSpace(tpl.Page) == "" {
			return fmt.Errorf("promo.templates.%s: page is required", name)
		}
		if tpl.Width <= 0 || tpl.Height <= 0 {
			return fmt.Errorf("promo.templates.%s: width and height must be positive", name)
		}
		if tpl.DurationSeconds <= 0 {
			return fmt.Errorf("promo.templates.%s: duration_seconds must be positive", name)
		}
		for _, segment := range tpl.Segments {
			if strings.TrimSpace(segment.Name) == "" {
				return fmt.Errorf("promo.templates.%s: every segment needs a name", name)
			}
			if segment.DurationSeconds <= 0 {
				return fmt.Errorf("promo.templates.%s: segment %q duration must be positive", name, segment.Name)
			}
		}
	}

	return nil
}
