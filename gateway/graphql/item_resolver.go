package graphql

import (
	"context"

	"github.com/dbouwman/graphql-api/portal"
)

// ItemResolver resolves the fields of a content item. Most fields are
// direct projections off the fetched payload; owner, groups and teams are
// the relations that cost calls.
type ItemResolver struct {
	r    *Resolver
	item *portal.Item
}

func (ir *ItemResolver) ID() *string {
	return optional(ir.item.ID)
}

// OwnerUsername projects the raw owner field; the owner relation below
// resolves it to a full user.
func (ir *ItemResolver) OwnerUsername() string {
	return ir.item.Owner
}

// Owner resolves the owning user with one dependent call. Resolution
// failures surface on this field; siblings are unaffected.
func (ir *ItemResolver) Owner(ctx context.Context) (*UserResolver, error) {
	return resolveOwner(ctx, ir.r, ir.item.Owner)
}

func (ir *ItemResolver) Title() string {
	return ir.item.Title
}

func (ir *ItemResolver) Type() string {
	return ir.item.Type
}

func (ir *ItemResolver) Description() *string {
	return optional(ir.item.Description)
}

func (ir *ItemResolver) Snippet() *string {
	return optional(ir.item.Snippet)
}

func (ir *ItemResolver) Tags() []string {
	return orStrings(ir.item.Tags)
}

func (ir *ItemResolver) TypeKeywords() []string {
	return orStrings(ir.item.TypeKeywords)
}

func (ir *ItemResolver) Properties() JSONValue {
	return NewJSONValue(ir.item.Properties)
}

func (ir *ItemResolver) Created() *float64 {
	return msPtr(ir.item.Created)
}

func (ir *ItemResolver) Modified() *float64 {
	return msPtr(ir.item.Modified)
}

func (ir *ItemResolver) CreatedISO() *string {
	return isoPtr(ir.item.Created)
}

func (ir *ItemResolver) ModifiedISO() *string {
	return isoPtr(ir.item.Modified)
}

// Groups is a fan-out relation: one call returning the portal's three
// membership categories, flattened into a single list.
func (ir *ItemResolver) Groups(ctx context.Context) ([]*GroupResolver, error) {
	groups, err := ir.r.client.FetchItemGroups(ctx, ir.item.ID, portal.SessionFromContext(ctx))
	if err != nil {
		return nil, wrapError(err, "Item.groups")
	}

	merged := make([]*GroupResolver, 0, len(groups.Admin)+len(groups.Member)+len(groups.Other))
	for _, category := range [][]portal.Group{groups.Admin, groups.Member, groups.Other} {
		for i := range category {
			merged = append(merged, &GroupResolver{r: ir.r, group: &category[i]})
		}
	}
	return merged, nil
}

// Teams derives the item's team groups from up to three id-valued
// properties. With no team ids present the relation short-circuits to an
// empty list without touching the backend.
func (ir *ItemResolver) Teams(ctx context.Context) ([]*GroupResolver, error) {
	ids := teamIDs(ir.item.Properties)
	if len(ids) == 0 {
		return []*GroupResolver{}, nil
	}

	groups, err := ir.r.client.SearchGroups(ctx, portal.TeamQuery(ids), portal.SessionFromContext(ctx))
	if err != nil {
		return nil, wrapError(err, "Item.teams")
	}

	resolvers := make([]*GroupResolver, len(groups))
	for i := range groups {
		resolvers[i] = &GroupResolver{r: ir.r, group: &groups[i]}
	}
	return resolvers, nil
}

// resolveOwner is the shared owner-user resolution used by Item, Group
// and Survey alike.
func resolveOwner(ctx context.Context, r *Resolver, username string) (*UserResolver, error) {
	if username == "" {
		return nil, nil
	}
	user, err := r.client.FetchUser(ctx, username, portal.SessionFromContext(ctx))
	if err != nil {
		return nil, wrapError(err, "owner")
	}
	return &UserResolver{r: r, user: user}, nil
}
