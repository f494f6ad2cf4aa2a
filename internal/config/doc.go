// Package config holds the resolved run configuration for a sweep. The
// configuration is built once at startup from an optional YAML file merged
// with CLI flags, validated, and then shared read-only across all workers.
package config
