// Package cache provides a Redis read-through cache in front of any
// store.ContactStore.
//
// Cached reads live under generation-scoped keys such as
// "contacts:v3:id:42". Every committed mutation increments the generation
// counter, which retires all earlier keys at once; stale entries simply
// expire with their TTL. Redis failures never fail a read: they are logged,
// counted and the wrapped store is queried instead.
package cache
