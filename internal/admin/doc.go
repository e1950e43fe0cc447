// Package admin drives the hosted backend's administrative API: user
// provisioning, schema migrations and chat transcript sampling. Every
// operation degrades to printed manual instructions when the backend
// endpoint it needs is unavailable.
package admin
