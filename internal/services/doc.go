// Package services defines the error classification shared by every
// external integration (TTS provider, backend admin API, ffmpeg, browser).
// Failures are tagged with a sentinel kind so callers branch on errors.Is
// instead of inspecting message text.
package services
