package portal

import (
	"fmt"
	"strings"
)

// Query-string grammar constants for survey searches. The portal's boolean
// search syntax is stringly typed; clause order only affects readability,
// not results.
const (
	// clauseFormType restricts results to form content.
	clauseFormType = "type:Form"

	// clauseExcludeConnect excludes connector-originated forms, which are
	// managed outside this API.
	clauseExcludeConnect = `-typekeywords:"Survey123 Connect"`

	// clauseDraft requires the draft keyword; clausePublished excludes it.
	clauseDraft     = "typekeywords:Draft"
	clausePublished = "-typekeywords:Draft"
)

// SurveyFilter holds the structured arguments of a survey search.
// Compile turns it into the portal's flat query string; the filter itself
// carries no request or session state.
type SurveyFilter struct {
	// Type is the lifecycle filter: "published" excludes drafts, any other
	// non-empty value requires them.
	Type string

	// Groups restricts results to items shared with any of these group ids.
	Groups []string

	// Q is a free-text clause appended verbatim. No escaping is performed;
	// malformed text surfaces as a backend query-syntax error.
	Q string
}

// Compile renders the filter as an AND-joined portal query string.
// Clause order is fixed: form type, connect exclusion, lifecycle, free
// text, group membership.
func (f SurveyFilter) Compile() string {
	parts := []string{
		clauseFormType,
		clauseExcludeConnect,
	}

	if f.Type != "" {
		if f.Type == "published" {
			parts = append(parts, clausePublished)
		} else {
			parts = append(parts, clauseDraft)
		}
	}

	if f.Q != "" {
		parts = append(parts, f.Q)
	}

	if len(f.Groups) > 0 {
		clauses := make([]string, len(f.Groups))
		for i, g := range f.Groups {
			clauses[i] = fmt.Sprintf("group:%s", g)
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	return strings.Join(parts, " AND ")
}

// TeamQuery builds the OR'd id clause used to resolve an item's team
// groups in one search. An empty id list yields an empty query.
func TeamQuery(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	clauses := make([]string, len(ids))
	for i, id := range ids {
		clauses[i] = fmt.Sprintf("id:%s", id)
	}
	return strings.Join(clauses, " OR ")
}
