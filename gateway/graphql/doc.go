// Package graphql exposes the portal catalog as a typed GraphQL API.
//
// The package is the resolution engine of the system: every field of every
// entity type resolves one of four ways.
//
//   - Direct projection: copy a (possibly renamed) property off the parent
//     payload. Zero additional calls.
//   - Defaulted projection: as above, substituting a fixed sentinel when the
//     source value is absent (e.g. a user's org id).
//   - Dependent call: exactly one additional portal call using data already
//     on the parent (e.g. resolving an item's owner user from the owner
//     username). Always uses the current request's session.
//   - Fan-out relation: a call whose result needs merging or filtering
//     before return (e.g. flattening the three item group-membership
//     categories, or collecting team ids off the parent and searching for
//     the matching groups in a single OR'd query).
//
// Sibling fields on the same parent resolve concurrently; a field's
// resolver never mutates data visible to another in-flight resolver.
// Failures are field-scoped: an error resolving one relation surfaces on
// that field alone and never aborts its siblings.
//
// The HTTP server, config, and error mapping around the engine follow the
// same lifecycle shape as the rest of the gateway components: a Config with
// Validate(), Setup/Start/Stop, a /health endpoint, and structured slog
// logging throughout.
package graphql
