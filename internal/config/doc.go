// Package config provides application configuration loaded from a YAML
// file with environment variable overrides (CPK_ prefix). Struct tag
// defaults apply when neither source sets a value.
//
// The Calculator section caps the input the calculation endpoints accept
// (upload size, value count); those caps are injected into the service
// layer rather than read globally.
package config
