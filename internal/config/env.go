package config

import (
	"os"
	"strings"

	"shopsmith/internal/services"
)

// Environment Variables:
//   - SUPABASE_URL: base URL of the hosted backend project (admin commands)
//   - SUPABASE_SERVICE_ROLE_KEY: service-level credential (admin commands)
//   - ELEVENLABS_API_KEY: TTS provider API key (voice synth)
//   - SITE_URL: public site URL used as password-reset redirect (optional)

// Secrets holds credentials read from the environment at process start.
// Fields stay empty when unset; commands call the Require* helpers for the
// subset they need so unrelated commands keep working without credentials.
type Secrets struct {
	BackendURL        string
	BackendServiceKey string
	TTSAPIKey         string
	SiteURL           string
}

// SecretsFromEnv snapshots the recognized environment variables.
func SecretsFromEnv() Secrets {
	return Secrets{
		BackendURL:        strings.TrimRight(getEnvString("SUPABASE_URL", ""), "/"),
		BackendServiceKey: getEnvString("SUPABASE_SERVICE_ROLE_KEY", ""),
		TTSAPIKey:         getEnvString("ELEVENLABS_API_KEY", ""),
		SiteURL:           getEnvString("SITE_URL", ""),
	}
}

// RequireBackend returns a configuration error naming the missing variables
// when the backend credentials are absent.
func (s Secrets) RequireBackend() error {
	missing := make([]string, 0, 2)
	if s.BackendURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if s.BackendServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrConfiguration, "backend", "credentials",
			"set "+strings.Join(missing, " and ")+" in the environment", nil)
	}
	return nil
}

// RequireTTS returns a configuration error when the TTS key is absent.
func (s Secrets) RequireTTS() error {
	if s.TTSAPIKey == "" {
		return services.Wrap(services.ErrConfiguration, "voice", "credentials",
			"set ELEVENLABS_API_KEY in the environment", nil)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
