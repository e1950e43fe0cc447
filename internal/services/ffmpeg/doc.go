// Package ffmpeg drives the ffmpeg binary to mux a captured frame sequence
// (and optional audio track) into a single video file. Command execution
// sits behind an Executor seam so tests never spawn the real encoder.
package ffmpeg
