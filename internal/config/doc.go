// Package config defines the application configuration model and its
// loading logic. Configuration is sourced from environment variables
// (SAGE_ prefix) with an optional YAML file for local development, and
// is validated before use so the rest of the application can assume a
// well-formed Config.
package config
