// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It detects CI execution, reads environment variables with ordered fallbacks,
// and resolves the database URL used by the integration tests, masking
// credentials whenever a value is logged.
package ciutil
