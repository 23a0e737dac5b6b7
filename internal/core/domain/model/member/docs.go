// Package member models the people the service talks to: customers who place orders,
// delivery agents who claim them, and administrators who watch everything.
//
// A Member is a directory entry (identity, display name, email, role) recorded from the
// authenticated principal forwarded by the upstream authenticator. Credentials live
// elsewhere; this package only needs enough to authorise lifecycle operations and to
// render human-readable references in order payloads.
package member
