package graphql

import (
	"context"

	gographql "github.com/graph-gophers/graphql-go"

	"github.com/dbouwman/graphql-api/pkg/timestamp"
	"github.com/dbouwman/graphql-api/portal"
)

// FeatureServiceResolver resolves a feature service item and its layers.
type FeatureServiceResolver struct {
	r    *Resolver
	item *portal.Item
}

func (fs *FeatureServiceResolver) ID() gographql.ID {
	return gographql.ID(fs.item.ID)
}

func (fs *FeatureServiceResolver) Title() *string {
	return optional(fs.item.Title)
}

func (fs *FeatureServiceResolver) URL() *string {
	return optional(fs.item.URL)
}

// Layers fetches the service definition and decorates each layer with its
// addressable endpoint. A service item without a URL has no layers to
// enumerate.
func (fs *FeatureServiceResolver) Layers(ctx context.Context) ([]*LayerResolver, error) {
	if fs.item.URL == "" {
		return []*LayerResolver{}, nil
	}

	var payload serviceDefinitionPayload
	if err := fs.r.client.RawGet(ctx, fs.item.URL+"?f=json", portal.SessionFromContext(ctx), &payload); err != nil {
		return nil, wrapError(err, "FeatureService.layers")
	}

	resolvers := make([]*LayerResolver, 0, len(payload.Layers))
	for _, layer := range payload.Layers {
		resolvers = append(resolvers, &LayerResolver{
			r:    fs.r,
			info: layer,
			url:  layerEndpoint(fs.item.URL, layer.ID),
		})
	}
	return resolvers, nil
}

// serviceDefinitionPayload is the service definition envelope; only the
// layer listing is projected.
type serviceDefinitionPayload struct {
	Layers []layerInfo `json:"layers"`
}

type layerInfo struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// LayerResolver resolves a single layer of a feature service. Its
// statistics fields degrade to sentinel values on failure rather than
// erroring, so a partially unavailable service still renders.
type LayerResolver struct {
	r    *Resolver
	info layerInfo
	url  string
}

func (lr *LayerResolver) ID() int32 {
	return lr.info.ID
}

func (lr *LayerResolver) Name() *string {
	return optional(lr.info.Name)
}

func (lr *LayerResolver) URL() string {
	return lr.url
}

// TotalRecords counts the layer's features. Any failure resolves to zero.
func (lr *LayerResolver) TotalRecords(ctx context.Context) int32 {
	var payload struct {
		Count int32 `json:"count"`
	}
	if err := lr.r.client.RawGet(ctx, layerCountURL(lr.url), portal.SessionFromContext(ctx), &payload); err != nil {
		requestLogger(ctx, lr.r.logger).Warn("Layer count query failed",
			"layer", lr.url,
			"error", err)
		return 0
	}
	return payload.Count
}

// LastEntry reports the most recent feature creation time as an ISO
// timestamp. Failures and empty layers resolve to the no-data sentinel.
func (lr *LayerResolver) LastEntry(ctx context.Context) string {
	var payload layerStatsPayload
	if err := lr.r.client.RawGet(ctx, layerStatsURL(lr.url), portal.SessionFromContext(ctx), &payload); err != nil {
		requestLogger(ctx, lr.r.logger).Warn("Layer statistics query failed",
			"layer", lr.url,
			"error", err)
		return noDataSentinel
	}

	if len(payload.Features) == 0 {
		return noDataSentinel
	}
	ms := timestamp.Parse(payload.Features[0].Attributes.LastEdit)
	if timestamp.IsZero(ms) {
		return noDataSentinel
	}
	return timestamp.ISO(ms)
}

// layerStatsPayload is the statistics query envelope.
type layerStatsPayload struct {
	Features []struct {
		Attributes struct {
			LastEdit any `json:"LastEdit"`
		} `json:"attributes"`
	} `json:"features"`
}
