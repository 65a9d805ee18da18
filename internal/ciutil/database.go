package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
)

const (
	// StandardCIUser is the standard username used in CI environments
	StandardCIUser = "postgres"

	// StandardCIPassword is the standard password used in CI environments
	StandardCIPassword = "postgres"

	// StandardCIDatabase is the database used in CI when the URL names none
	StandardCIDatabase = "contacts_test"

	// StandardCIOptions contains standard connection options for CI environments
	StandardCIOptions = "sslmode=disable"
)

// GetTestDatabaseURL returns a database URL for integration tests.
// It checks CONTACTS_TEST_DB_URL, then DATABASE_URL, then CONTACTS_DATABASE_URL.
//
// In a CI environment the URL is standardized to the postgres:postgres
// service credentials. If no variable is set, it returns an empty string.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvContactsTestDBURL, EnvDatabaseURL, EnvContactsDatabaseURL},
		"",
		logger,
	)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to standardize database URL",
				slog.String("error", err.Error()),
				slog.String("original_url", MaskSensitiveValue(dbURL)),
			)
		}
		return dbURL
	}

	if standardized != dbURL && logger != nil {
		logger.Info("Standardized database URL for CI environment",
			slog.String("original", MaskSensitiveValue(dbURL)),
			slog.String("standardized", MaskSensitiveValue(standardized)),
		)
	}
	return standardized
}

// standardizeDatabaseURL replaces the credentials of a postgres URL with the
// standard CI ones and fills in a database name and options when missing.
// Non-postgres URLs are returned unchanged.
func standardizeDatabaseURL(dbURL string) (string, error) {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}

	if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
		return dbURL, nil
	}

	standardized := *parsedURL
	standardized.User = url.UserPassword(StandardCIUser, StandardCIPassword)
	if parsedURL.Path == "" || parsedURL.Path == "/" {
		standardized.Path = "/" + StandardCIDatabase
	}
	if parsedURL.RawQuery == "" {
		standardized.RawQuery = StandardCIOptions
	}

	return standardized.String(), nil
}
