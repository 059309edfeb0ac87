package portal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurveyFilterCompile(t *testing.T) {
	tests := []struct {
		name   string
		filter SurveyFilter
		want   string
	}{
		{
			name:   "no arguments",
			filter: SurveyFilter{},
			want:   `type:Form AND -typekeywords:"Survey123 Connect"`,
		},
		{
			name:   "published excludes draft keyword",
			filter: SurveyFilter{Type: "published"},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND -typekeywords:Draft`,
		},
		{
			name:   "draft requires draft keyword",
			filter: SurveyFilter{Type: "draft"},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND typekeywords:Draft`,
		},
		{
			name:   "any other lifecycle value is treated as draft",
			filter: SurveyFilter{Type: "pending"},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND typekeywords:Draft`,
		},
		{
			name:   "free text appended verbatim",
			filter: SurveyFilter{Q: "water quality"},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND water quality`,
		},
		{
			name:   "groups ORed and parenthesized",
			filter: SurveyFilter{Groups: []string{"g1", "g2"}},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND (group:g1 OR group:g2)`,
		},
		{
			name:   "single group still parenthesized",
			filter: SurveyFilter{Groups: []string{"g1"}},
			want:   `type:Form AND -typekeywords:"Survey123 Connect" AND (group:g1)`,
		},
		{
			name: "all clauses in fixed order",
			filter: SurveyFilter{
				Type:   "published",
				Groups: []string{"g1", "g2"},
				Q:      "owner:jsmith",
			},
			want: `type:Form AND -typekeywords:"Survey123 Connect" AND -typekeywords:Draft` +
				` AND owner:jsmith AND (group:g1 OR group:g2)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Compile())
		})
	}
}

func TestSurveyFilterFixedPrefix(t *testing.T) {
	// Regardless of arguments, the compiled filter always begins with the
	// form-type clause and always excludes connector-originated forms.
	filters := []SurveyFilter{
		{},
		{Type: "draft"},
		{Type: "published", Q: "anything", Groups: []string{"a", "b", "c"}},
		{Q: `malformed (((`},
	}

	for _, f := range filters {
		got := f.Compile()
		assert.True(t, strings.HasPrefix(got, `type:Form AND -typekeywords:"Survey123 Connect"`), got)
	}
}

func TestTeamQuery(t *testing.T) {
	assert.Equal(t, "", TeamQuery(nil))
	assert.Equal(t, "id:abc", TeamQuery([]string{"abc"}))
	assert.Equal(t, "id:a OR id:b OR id:c", TeamQuery([]string{"a", "b", "c"}))
}
