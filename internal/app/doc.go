// Package app assembles the HTTP application: configuration, structured
// logging, the middleware chain, the calculation and health handlers,
// and the prometheus registry. cmd/web drives it.
package app
