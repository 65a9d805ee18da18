//go:build integration

// Package testdb provides utilities for integration tests that run against a
// real PostgreSQL database.
//
// Tests using this package are compiled only with the integration build tag:
//
//	go test -tags=integration ./...
//
// The database is located through CONTACTS_TEST_DB_URL or DATABASE_URL. When
// neither is set the tests are skipped. GetTestDBWithT applies the embedded
// migrations before returning, and WithTx gives each test a transaction that
// is rolled back afterwards, so tests never see each other's rows.
package testdb
