// Package elevenlabs calls the ElevenLabs text-to-speech HTTP API: one POST
// per utterance, returning the raw audio bytes the provider streams back.
package elevenlabs
