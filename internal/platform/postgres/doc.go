// Package postgres provides the PostgreSQL implementation of the contact
// repository and unit of work defined in the internal/store package.
//
// Connections are opened through the pgx stdlib driver ("pgx"). Every store
// method resolves its executor with store.Executor, so calls made with a
// context returned by UnitOfWork.Begin run inside that unit's transaction and
// all other calls run directly on the pool.
//
// The schema is managed with goose. Migrations are embedded in the binary and
// applied with Migrate.
package postgres
