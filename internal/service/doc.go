// Package service contains the application-specific use cases of the
// contacts directory. It orchestrates domain objects and the repository
// abstraction defined in internal/store to fulfill application features.
//
// Each use case is a small struct with an Execute method:
//
//   - InsertContactUseCase validates the input, builds a Contact and saves it.
//   - UpdateContactUseCase loads a Contact, validates the input and replaces its fields.
//   - DeleteContactUseCase loads a Contact and removes it.
//   - GetContactsUseCase answers read queries (all, by id, by area code).
//
// Mutating use cases run inside a store.UnitOfWork: they begin a unit, perform
// their repository calls on the context it returns and commit exactly once.
// Any failure rolls the unit back. Read queries never touch the unit of work.
//
// Validation failures are returned as *domain.ValidationError values whose
// messages are shown to end users unchanged. Persistence errors, including
// store.ErrContactNotFound, are returned as the store reported them.
package service
