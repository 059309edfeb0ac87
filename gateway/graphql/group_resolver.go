package graphql

import (
	"context"

	gographql "github.com/graph-gophers/graphql-go"

	"github.com/dbouwman/graphql-api/portal"
)

// GroupResolver resolves the fields of a community group. thumbnailUrl
// and the ISO timestamps are derived, never stored; owner is the shared
// dependent-call relation.
type GroupResolver struct {
	r     *Resolver
	group *portal.Group
}

func (gr *GroupResolver) ID() gographql.ID {
	return gographql.ID(gr.group.ID)
}

func (gr *GroupResolver) Title() string {
	return gr.group.Title
}

func (gr *GroupResolver) OwnerUsername() string {
	return gr.group.Owner
}

func (gr *GroupResolver) Owner(ctx context.Context) (*UserResolver, error) {
	return resolveOwner(ctx, gr.r, gr.group.Owner)
}

func (gr *GroupResolver) Description() *string {
	return optional(gr.group.Description)
}

func (gr *GroupResolver) Snippet() *string {
	return optional(gr.group.Snippet)
}

func (gr *GroupResolver) Tags() []string {
	return orStrings(gr.group.Tags)
}

func (gr *GroupResolver) Created() *float64 {
	return msPtr(gr.group.Created)
}

func (gr *GroupResolver) Modified() *float64 {
	return msPtr(gr.group.Modified)
}

func (gr *GroupResolver) CreatedISO() *string {
	return isoPtr(gr.group.Created)
}

func (gr *GroupResolver) ModifiedISO() *string {
	return isoPtr(gr.group.Modified)
}

func (gr *GroupResolver) Thumbnail() *string {
	return optional(gr.group.Thumbnail)
}

// ThumbnailURL is pure computation: the client never has to know how to
// build the path to a group thumbnail. No backend call is issued.
func (gr *GroupResolver) ThumbnailURL() string {
	return groupThumbnailURL(gr.r.client.PortalURL(), gr.group.ID, gr.group.Thumbnail)
}

func (gr *GroupResolver) UserMembership() *GroupMembershipResolver {
	if gr.group.UserMembership == nil {
		return nil
	}
	return &GroupMembershipResolver{membership: gr.group.UserMembership}
}

// GroupMembershipResolver projects the calling user's membership record.
type GroupMembershipResolver struct {
	membership *portal.GroupMembership
}

func (mr *GroupMembershipResolver) Username() string {
	return mr.membership.Username
}

func (mr *GroupMembershipResolver) MemberType() string {
	return mr.membership.MemberType
}
