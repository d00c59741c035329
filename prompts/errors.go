package prompts

import (
	"fmt"
	"strings"
)

// ConfigNotFoundError reports a missing prompts configuration file.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// ConfigError reports an invalid prompts configuration. Problems holds every
// discrete validation failure, never just the first.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "configuration validation failed:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// NotFoundError reports a lookup of a prompt key that is not in the
// collection. Available lists the valid keys, sorted.
type NotFoundError struct {
	Key       string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prompt %q not found. Available prompts: %s", e.Key, strings.Join(e.Available, ", "))
}
