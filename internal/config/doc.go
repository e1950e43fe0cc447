// Package config loads and validates shopsmith configuration.
//
// Non-secret settings live in a TOML file (~/.config/shopsmith/config.toml
// or a project-local shopsmith.toml). Secrets (the backend URL and service
// key, the TTS API key, and the public site URL) are read from the
// environment so they never end up in a checked-in config file.
package config
