// Package portal is the client surface for the remote content catalog.
//
// It holds the three pieces of the system that talk about the backend in the
// backend's own terms:
//
//   - Session: the per-request credential bundle derived from an inbound
//     authorization header. A nil Session means unauthenticated; the portal
//     decides what that caller may see.
//   - SurveyFilter: the compiler from structured survey-search arguments to
//     the portal's flat boolean query-string grammar.
//   - Client: the minimal set of call shapes used against the portal REST
//     API (fetch-by-id, search, raw JSON GET with token injection).
//
// The client performs no retries, no response caching, and no timeout
// enforcement beyond whatever http.Client it is constructed with. Backend
// failures propagate to the caller unmodified so the resolution layer can
// decide per field whether they are errors or sentinels.
package portal
