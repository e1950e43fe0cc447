// Package promo renders promo videos by capturing frames from a local HTML
// page in a headless browser and encoding them with ffmpeg. Templates are
// configured bundles of page, resolution, frame rate, duration and audio
// timeline; a render is one template end to end.
package promo
