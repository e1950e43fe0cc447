// Package voice turns configured utterances into audio files through the
// TTS provider, one call per utterance.
package voice
