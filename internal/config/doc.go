// Package config provides the configuration for chronos: defaults, the
// optional YAML settings file, .env loading and the service credentials.
package config
