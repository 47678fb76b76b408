// Package userstore persists user records in MongoDB and implements the
// identity.Storage interface.
//
// Uniqueness of the (provider, provider_id) pair is enforced by a partial
// unique index rather than application-level locking, so concurrent
// reconciliations for the same external identity resolve through the
// duplicate-key error path. Email uniqueness is scoped to local accounts:
// the same email arriving via two providers yields two distinct records.
// Call EnsureIndexes once at startup.
package userstore
