package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeListing()
	c.normalizeVoice()
	if err := c.normalizePoster(); err != nil {
		return err
	}
	if err := c.normalizePromo(); err != nil {
		return err
	}
	c.normalizeBackend()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"listings_dir", &c.Paths.ListingsDir},
		{"output_dir", &c.Paths.OutputDir},
		{"staging_dir", &c.Paths.StagingDir},
		{"log_dir", &c.Paths.LogDir},
		{"assets_dir", &c.Paths.AssetsDir},
		{"migrations_dir", &c.Paths.MigrationsDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("normalize %s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeListing() {
	ids := make([]string, 0, len(c.Listing.IDs))
	for _, id := range c.Listing.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	c.Listing.IDs = ids
	c.Listing.OutputFile = strings.TrimSpace(c.Listing.OutputFile)
	if c.Listing.OutputFile == "" {
		c.Listing.OutputFile = defaultListingOutput
	}
	if c.Listing.Quantity <= 0 {
		c.Listing.Quantity = defaultListingQty
	}
}

func (c *Config) normalizeVoice() {
	c.Voice.BaseURL = strings.TrimRight(strings.TrimSpace(c.Voice.BaseURL), "/")
	if c.Voice.BaseURL == "" {
		c.Voice.BaseURL = defaultVoiceBaseURL
	}
	if c.Voice.Model == "" {
		c.Voice.Model = defaultVoiceModel
	}
	if c.Voice.TimeoutSeconds <= 0 {
		c.Voice.TimeoutSeconds = defaultVoiceTimeout
	}
	if c.Voice.Concurrency <= 0 {
		c.Voice.Concurrency = defaultVoiceWorkers
	}
}

func (c *Config) normalizePoster() error {
	if c.Poster.Width <= 0 {
		c.Poster.Width = defaultPosterWidth
	}
	if c.Poster.Height <= 0 {
		c.Poster.Height = defaultPosterHeight
	}
	if c.Poster.OutputFile == "" {
		c.Poster.OutputFile = defaultPosterOutput
	}
	if c.Poster.FontPath != "" {
		expanded, err := expandPath(c.Poster.FontPath)
		if err != nil {
			return fmt.Errorf("normalize poster font_path: %w", err)
		}
		c.Poster.FontPath = expanded
	}
	return nil
}

func (c *Config) normalizePromo() error {
	if c.Promo.FrameRate <= 0 {
		c.Promo.FrameRate = defaultPromoFrameRate
	}
	if c.Promo.GapSeconds < 0 {
		c.Promo.GapSeconds = defaultPromoGapSeconds
	}
	if c.Promo.CaptureTimeoutSeconds <= 0 {
		c.Promo.CaptureTimeoutSeconds = defaultCaptureTimeout
	}
	if c.Promo.EncodeTimeoutSeconds <= 0 {
		c.Promo.EncodeTimeoutSeconds = defaultEncodeTimeout
	}
	if c.Promo.CRF <= 0 {
		c.Promo.CRF = defaultPromoCRF
	}
	for name, tpl := range c.Promo.Templates {
		if tpl.FrameRate <= 0 {
			tpl.FrameRate = c.Promo.FrameRate
		}
		if tpl.Page != "" {
			expanded, err := expandPath(tpl.Page)
			if err != nil {
				return fmt.Errorf("normalize template %q page: %w", name, err)
			}
			tpl.Page = expanded
		}
		if tpl.AudioFile != "" {
			expanded, err := expandPath(tpl.AudioFile)
			if err != nil {
				return fmt.Errorf("normalize template %q audio_file: %w", name, err)
			}
			tpl.AudioFile = expanded
		}
		c.Promo.Templates[name] = tpl
	}
	return nil
}

func (c *Config) normalizeBackend() {
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = defaultBackendTimeout
	}
	if strings.TrimSpace(c.Backend.ChatTable) == "" {
		c.Backend.ChatTable = defaultChatTable
	}
	if c.Backend.SampleLimit <= 0 {
		c.Backend.SampleLimit = defaultChatSampleLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
