package members

import "context"

// MemberStore defines the persistence interface for the members collection.
// Implementations call straight through to their backend: no retries, no
// caching, and backend failures are returned to the caller.
type MemberStore interface {
	// List returns every member, in no particular order.
	// An empty collection yields an empty, non-nil slice.
	List(ctx context.Context) ([]Member, error)

	// Get returns the member with the given id. found is false when no such
	// record exists; that is not an error.
	Get(ctx context.Context, id string) (member Member, found bool, err error)

	// Put creates or fully replaces the member keyed by member.ID().
	Put(ctx context.Context, member Member) error

	// Delete removes the member with the given id. Deleting a missing id
	// succeeds.
	Delete(ctx context.Context, id string) error
}
