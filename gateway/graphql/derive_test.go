package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupThumbnailURL(t *testing.T) {
	tests := []struct {
		name      string
		groupID   string
		thumbnail string
		want      string
	}{
		{
			name:      "with thumbnail file",
			groupID:   "abc123",
			thumbnail: "logo.png",
			want:      "https://www.arcgis.com/sharing/rest/community/groups/abc123/info/logo.png",
		},
		{
			name:    "without thumbnail falls back to default",
			groupID: "abc123",
			want:    defaultGroupThumbnailURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupThumbnailURL("https://www.arcgis.com/sharing/rest", tt.groupID, tt.thumbnail)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTeamIDs(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]any
		want       []string
	}{
		{
			name: "all three keys in fixed order",
			properties: map[string]any{
				"contentGroupId":       "c",
				"collaborationGroupId": "a",
				"followersGroupId":     "b",
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "missing keys are skipped",
			properties: map[string]any{
				"followersGroupId": "b",
			},
			want: []string{"b"},
		},
		{
			name: "non-string values are skipped",
			properties: map[string]any{
				"collaborationGroupId": 42,
				"contentGroupId":       "c",
			},
			want: []string{"c"},
		},
		{
			name:       "nil property bag",
			properties: nil,
			want:       nil,
		},
		{
			name: "empty string values are skipped",
			properties: map[string]any{
				"collaborationGroupId": "",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, teamIDs(tt.properties))
		})
	}
}

func TestLayerEndpoint(t *testing.T) {
	got := layerEndpoint("https://services.example.com/x/FeatureServer", 3)
	assert.Equal(t, "https://services.example.com/x/FeatureServer/3", got)
}

func TestFormInfoURL(t *testing.T) {
	got := formInfoURL("https://www.arcgis.com/sharing/rest", "i1")
	assert.Equal(t,
		"https://www.arcgis.com/sharing/rest/content/items/i1/info/form.json?f=json", got)
}

func TestRelatedItemsURL(t *testing.T) {
	got := relatedItemsURL("https://www.arcgis.com/sharing/rest", "i1")
	assert.Equal(t,
		"https://www.arcgis.com/sharing/rest/content/items/i1/relatedItems?f=json&relationshipType=Survey2Service",
		got)
}

func TestIsoPtr(t *testing.T) {
	assert.Nil(t, isoPtr(0))

	got := isoPtr(1500000000000)
	assert.NotNil(t, got)
	assert.Equal(t, "2017-07-14T02:40:00Z", *got)
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))

	got := optional("x")
	assert.NotNil(t, got)
	assert.Equal(t, "x", *got)
}

func TestOrStrings(t *testing.T) {
	assert.Equal(t, []string{}, orStrings(nil))
	assert.Equal(t, []string{"a"}, orStrings([]string{"a"}))
}
