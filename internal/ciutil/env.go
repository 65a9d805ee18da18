package ciutil

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Common environment variable names used across the codebase.
// These constants ensure consistent access and prevent typos.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables
	EnvContactsTestDBURL   = "CONTACTS_TEST_DB_URL" // Preferred for tests
	EnvDatabaseURL         = "DATABASE_URL"
	EnvContactsDatabaseURL = "CONTACTS_DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using fallback environment variable",
					slog.String("used_var", envVar),
					slog.String("preferred_var", envVars[0]),
					slog.String("value", MaskSensitiveValue(val)),
				)
			}
			return val
		}
	}
	return defaultValue
}

// MaskSensitiveValue masks sensitive data in values like database URLs to prevent
// exposing credentials in logs.
func MaskSensitiveValue(value string) string {
	if u, err := url.Parse(value); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			return MaskURLPassword(u)
		}
		return value
	}

	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}

// maskedPassword replaces URL passwords in logged values. url.URL.String
// would percent-encode it, so it is substituted into the redacted form.
const maskedPassword = "****"

// MaskURLPassword renders u with its password, if any, replaced by "****".
func MaskURLPassword(u *url.URL) string {
	if _, ok := u.User.Password(); !ok {
		return u.String()
	}
	return strings.Replace(u.Redacted(), ":xxxxx@", ":"+maskedPassword+"@", 1)
}
