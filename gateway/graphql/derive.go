package graphql

import (
	"fmt"

	"github.com/dbouwman/graphql-api/pkg/timestamp"
)

// Derived-field synthesis: pure, call-free computations shared across
// entity types. Values produced here never come back from the portal
// directly; they are recomputed on every request.

const (
	// defaultGroupThumbnailURL is the fixed static asset returned when a
	// group has no thumbnail of its own.
	defaultGroupThumbnailURL = "https://www.arcgis.com/group-thumbnail.png"

	// noDataSentinel is the lastEntry value for layers with no rows or a
	// failed statistics query.
	noDataSentinel = "No Data"

	// orgIDUnavailable is the orgId value for users whose record carries
	// no org id.
	orgIDUnavailable = "not available"
)

// teamPropertyKeys are the item property keys that may carry team group
// ids. At most three groups back an item's teams.
var teamPropertyKeys = []string{
	"collaborationGroupId",
	"followersGroupId",
	"contentGroupId",
}

// groupThumbnailURL builds the canonical community thumbnail URL for a
// group, or the fixed default when the group has no thumbnail file.
func groupThumbnailURL(portalURL, groupID, thumbnail string) string {
	if thumbnail == "" {
		return defaultGroupThumbnailURL
	}
	return fmt.Sprintf("%s/community/groups/%s/info/%s", portalURL, groupID, thumbnail)
}

// teamIDs collects the team group ids present on an item's property bag,
// in fixed key order. Missing keys are skipped; an empty result means the
// teams relation short-circuits without a backend call.
func teamIDs(properties map[string]any) []string {
	var ids []string
	for _, key := range teamPropertyKeys {
		if v, ok := properties[key].(string); ok && v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

// layerEndpoint qualifies a layer id against its parent service URL.
func layerEndpoint(serviceURL string, layerID int32) string {
	return fmt.Sprintf("%s/%d", serviceURL, layerID)
}

// formInfoURL is the form configuration endpoint for a survey item.
func formInfoURL(portalURL, itemID string) string {
	return fmt.Sprintf("%s/content/items/%s/info/form.json?f=json", portalURL, itemID)
}

// relatedItemsURL is the related-items endpoint filtered to the
// survey-to-service relationship.
func relatedItemsURL(portalURL, itemID string) string {
	return fmt.Sprintf("%s/content/items/%s/relatedItems?f=json&relationshipType=Survey2Service", portalURL, itemID)
}

// layerCountURL is the count-only query for a layer.
func layerCountURL(layerURL string) string {
	return layerURL + "/query?where=1=1&returnCountOnly=true&f=json"
}

// layerStatsURL is the max-creation-date statistics query for a layer.
// The portal accepts the outStatistics JSON literally in the query string.
func layerStatsURL(layerURL string) string {
	return layerURL + `/query?outStatistics=[{"statisticType":"max","onStatisticField":"CreationDate","outStatisticFieldName":"LastEdit"}]&where=1=1&f=json`
}

// isoPtr converts an epoch-millisecond value to an ISO-8601 pointer,
// nil when the value is unset.
func isoPtr(ms int64) *string {
	if timestamp.IsZero(ms) {
		return nil
	}
	iso := timestamp.ISO(ms)
	return &iso
}

// msPtr converts an epoch-millisecond value to a nullable Float,
// nil when unset.
func msPtr(ms int64) *float64 {
	if ms == 0 {
		return nil
	}
	f := float64(ms)
	return &f
}

// optional returns a pointer for nullable String fields, nil for the
// empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orStrings guarantees a non-nil slice for non-null list fields.
func orStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
