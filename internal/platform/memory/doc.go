// Package memory provides an in-process implementation of the contact
// repository and unit of work defined in the internal/store package.
//
// It backs the server when the memory storage driver is configured and is
// used by tests that need a real store without a database. Data lives only
// as long as the process.
package memory
