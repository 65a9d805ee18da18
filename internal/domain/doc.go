// Package domain contains the core business entities and value objects of the
// contacts directory: the Contact entity and the PhoneNumber value object.
//
// Entities in this package are plain data holders. Business rules such as
// "a contact must have a name" are enforced by the use cases in
// internal/service before an entity is created or mutated. The only rule that
// lives here is the phone number format, because a PhoneNumber cannot be
// constructed in an invalid state.
package domain
