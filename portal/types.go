package portal

// Backend-native record shapes. These mirror the portal's JSON payloads;
// none of them are persisted by this system. Every value is request-scoped:
// created when a response is decoded, discarded once the GraphQL response
// is serialized.

// Item is a content record from the portal catalog. Surveys are Items
// filtered to the Form content type.
type Item struct {
	ID           string         `json:"id"`
	Owner        string         `json:"owner"`
	Title        string         `json:"title"`
	Type         string         `json:"type"`
	Description  string         `json:"description"`
	Snippet      string         `json:"snippet"`
	Tags         []string       `json:"tags"`
	TypeKeywords []string       `json:"typeKeywords"`
	Properties   map[string]any `json:"properties"`
	Thumbnail    string         `json:"thumbnail"`
	URL          string         `json:"url"`
	Access       string         `json:"access"`
	Created      int64          `json:"created"`
	Modified     int64          `json:"modified"`
}

// User is a community user record.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Description string   `json:"description"`
	Email       string   `json:"email"`
	OrgID       string   `json:"orgId"`
	Role        string   `json:"role"`
	Privileges  []string `json:"privileges"`
	Access      string   `json:"access"`
	LastLogin   int64    `json:"lastLogin"`
	Created     int64    `json:"created"`
	Modified    int64    `json:"modified"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Groups      []Group  `json:"groups"`
}

// Group is a community group record.
type Group struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Owner          string           `json:"owner"`
	Description    string           `json:"description"`
	Snippet        string           `json:"snippet"`
	Tags           []string         `json:"tags"`
	Thumbnail      string           `json:"thumbnail"`
	Created        int64            `json:"created"`
	Modified       int64            `json:"modified"`
	UserMembership *GroupMembership `json:"userMembership"`
}

// GroupMembership describes the calling user's relationship to a group.
type GroupMembership struct {
	Username   string `json:"username"`
	MemberType string `json:"memberType"`
}

// ItemGroups is the portal's three-way categorization of the groups an
// item is shared to, relative to the calling user.
type ItemGroups struct {
	Admin  []Group `json:"admin"`
	Member []Group `json:"member"`
	Other  []Group `json:"other"`
}

// Token is the result of a generateToken call.
type Token struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}

// itemSearchResponse is the portal search envelope for items.
type itemSearchResponse struct {
	Total   int    `json:"total"`
	Results []Item `json:"results"`
}

// userSearchResponse is the portal search envelope for users.
type userSearchResponse struct {
	Total   int    `json:"total"`
	Results []User `json:"results"`
}

// groupSearchResponse is the portal search envelope for groups.
type groupSearchResponse struct {
	Total   int     `json:"total"`
	Results []Group `json:"results"`
}

// errorEnvelope is the portal's error shape. The portal reports most
// failures as HTTP 200 with this envelope in the body.
type errorEnvelope struct {
	Error *portalError `json:"error"`
}

type portalError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}
