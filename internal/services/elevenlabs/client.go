package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopsmith/internal/services"
)

// HTTPDoer describes the HTTP client used by the synthesis service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// VoiceSettings carries the tuning parameters of a voice profile in the
// provider's wire format.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (primarily for tests).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// Client wraps the ElevenLabs synthesis endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  HTTPDoer
}

// New constructs a synthesis client. The timeout applies per request.
func New(baseURL, apiKey, model string, timeoutSeconds int, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("elevenlabs base URL required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("elevenlabs API key required")
	}
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	client := &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Synthesize performs one synthesis call and returns the audio bytes
// verbatim. No retries: a provider error aborts the run.
func (c *Client) Synthesize(ctx context.Context, voiceID, text string, settings VoiceSettings) ([]byte, error) {
	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		return nil, services.Wrap(services.ErrValidation, "voice", "synthesize", "voice id required", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrValidation, "voice", "synthesize", "empty utterance text", nil)
	}

	body, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       c.model,
		VoiceSettings: settings,
	})
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "voice", "synthesize", "provider did not answer in time", err)
		}
		return nil, services.Wrap(services.ErrExternalTool, "voice", "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(
			services.ErrExternalTool,
			"voice",
			"synthesize",
			fmt.Sprintf("provider returned %s: %s", resp.Status, strings.TrimSpace(string(detail))),
			nil,
		)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "voice", "synthesize", "read audio body", err)
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "voice", "synthesize", "provider returned empty audio", nil)
	}
	return audio, nil
}
