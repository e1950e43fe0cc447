// Package main hosts the shopsmith CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the
// storefront workflows: spreadsheet export, voice synthesis, poster and promo
// rendering, backend administration, and configuration scaffolding. It
// centralizes configuration resolution, secret loading, and structured
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
