package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	// Other environments are set via ENV variable
	switch env := Environment(strings.ToLower(os.Getenv("ENV"))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

// ReleaseMode reports whether gin should run in release mode
func (e Environment) ReleaseMode() bool {
	return e == Production
}
