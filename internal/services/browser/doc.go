// Package browser opens a headless Chromium page at a fixed viewport and
// screenshots it, which is all the promo frame capture needs from a browser.
package browser
