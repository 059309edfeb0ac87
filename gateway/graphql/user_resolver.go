package graphql

import (
	gographql "github.com/graph-gophers/graphql-go"

	"github.com/dbouwman/graphql-api/portal"
)

// UserResolver resolves the fields of a community user. Everything here
// is projection; the groups list arrives embedded in the user payload.
type UserResolver struct {
	r    *Resolver
	user *portal.User
}

func (ur *UserResolver) ID() gographql.ID {
	return gographql.ID(ur.user.ID)
}

func (ur *UserResolver) Username() string {
	return ur.user.Username
}

func (ur *UserResolver) FirstName() string {
	return ur.user.FirstName
}

func (ur *UserResolver) LastName() string {
	return ur.user.LastName
}

func (ur *UserResolver) FullName() *string {
	return optional(ur.user.FullName)
}

func (ur *UserResolver) Description() *string {
	return optional(ur.user.Description)
}

func (ur *UserResolver) Email() string {
	return ur.user.Email
}

// OrgID is a defaulted projection: users without an org resolve to a
// fixed sentinel rather than null.
func (ur *UserResolver) OrgID() *string {
	if ur.user.OrgID == "" {
		s := orgIDUnavailable
		return &s
	}
	return &ur.user.OrgID
}

func (ur *UserResolver) Role() *string {
	return optional(ur.user.Role)
}

func (ur *UserResolver) Privileges() []string {
	return orStrings(ur.user.Privileges)
}

func (ur *UserResolver) Access() string {
	return ur.user.Access
}

func (ur *UserResolver) LastLogin() *float64 {
	return msPtr(ur.user.LastLogin)
}

func (ur *UserResolver) Created() *float64 {
	return msPtr(ur.user.Created)
}

func (ur *UserResolver) Modified() *float64 {
	return msPtr(ur.user.Modified)
}

func (ur *UserResolver) Thumbnail() *string {
	return optional(ur.user.Thumbnail)
}

func (ur *UserResolver) Tags() []string {
	return orStrings(ur.user.Tags)
}

func (ur *UserResolver) Groups() []*GroupResolver {
	resolvers := make([]*GroupResolver, len(ur.user.Groups))
	for i := range ur.user.Groups {
		resolvers[i] = &GroupResolver{r: ur.r, group: &ur.user.Groups[i]}
	}
	return resolvers
}
