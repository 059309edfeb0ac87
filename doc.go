// Package graphqlapi is the root of the graphql-api module: a GraphQL
// facade over a remote portal content catalog.
//
// # Architecture
//
// The module is a thin read-only translation layer. Nothing is persisted;
// every GraphQL request fans out into one or more portal REST calls and
// every response is assembled from those payloads on the fly.
//
//	┌─────────────────────────────────────┐
//	│        gateway/graphql              │  Schema, resolvers, HTTP server
//	│  (query root, relations, derived    │  Field-level error mapping
//	│   fields, session middleware)       │
//	└─────────────────────────────────────┘
//	           ↓ calls
//	┌─────────────────────────────────────┐
//	│            portal                   │  REST client, sessions,
//	│  (client, session, survey filter)   │  query compilation
//	└─────────────────────────────────────┘
//	           ↓ HTTP
//	      portal catalog service
//
// Supporting packages: errors (classified error wrapping), metric
// (Prometheus registry), pkg/timestamp (epoch-millisecond conversion).
//
// # Resolution model
//
// Sibling fields of one query resolve concurrently, bounded per request.
// A failing relation produces a field-level error entry; sibling fields
// and the rest of the response are unaffected. Derived fields (thumbnail
// URLs, ISO timestamps, team ids) are computed locally and never cost a
// backend call.
//
// Authentication is pass-through: the Authorization header value becomes
// the portal token for the duration of one request. No credential is
// stored, validated, or refreshed here.
package graphqlapi
