package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	gographql "github.com/graph-gophers/graphql-go"

	"github.com/dbouwman/graphql-api/portal"
)

// MetricsRecorder wraps a GraphQL operation to record metrics
type MetricsRecorder interface {
	RecordMetrics(ctx context.Context, operation string, fn func() error) error
}

// Resolver is the query root. It owns nothing but the portal client and
// per-request plumbing; all entity state lives in the child resolvers that
// wrap backend payloads for the duration of one request.
type Resolver struct {
	client       *portal.Client
	hubURL       string
	demoUsername string
	demoPassword string
	logger       *slog.Logger
	metrics      MetricsRecorder
}

// NewResolver creates the query root resolver
func NewResolver(client *portal.Client, config Config, logger *slog.Logger, metrics MetricsRecorder) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:       client,
		hubURL:       config.HubURL,
		demoUsername: config.DemoUsername,
		demoPassword: config.DemoPassword,
		logger:       logger.With("component", "resolver"),
		metrics:      metrics,
	}
}

// record runs a root operation through the metrics recorder when present
func (r *Resolver) record(ctx context.Context, operation string, fn func() error) error {
	if r.metrics != nil {
		return r.metrics.RecordMetrics(ctx, operation, fn)
	}
	return fn()
}

// Info resolves the informational root field
func (r *Resolver) Info() string {
	return "GraphQL wrapper for the portal catalog API"
}

// Item resolves a single item by id
func (r *Resolver) Item(ctx context.Context, args struct{ ID gographql.ID }) (*ItemResolver, error) {
	var item *portal.Item
	err := r.record(ctx, "item", func() error {
		var qErr error
		item, qErr = r.client.FetchItem(ctx, string(args.ID), portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "item")
	}
	return &ItemResolver{r: r, item: item}, nil
}

// SearchItems resolves an item search with a caller-supplied query string.
// The query text is not validated locally; a backend query-syntax
// rejection surfaces as a field-level error here.
func (r *Resolver) SearchItems(ctx context.Context, args struct{ Query string }) ([]*ItemResolver, error) {
	var items []portal.Item
	err := r.record(ctx, "searchItems", func() error {
		var qErr error
		items, qErr = r.client.SearchItems(ctx, args.Query, portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "searchItems")
	}

	resolvers := make([]*ItemResolver, len(items))
	for i := range items {
		resolvers[i] = &ItemResolver{r: r, item: &items[i]}
	}
	return resolvers, nil
}

// User resolves a single user by username
func (r *Resolver) User(ctx context.Context, args struct{ Username string }) (*UserResolver, error) {
	var user *portal.User
	err := r.record(ctx, "user", func() error {
		var qErr error
		user, qErr = r.client.FetchUser(ctx, args.Username, portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "user")
	}
	return &UserResolver{r: r, user: user}, nil
}

// SearchUsers resolves a community user search
func (r *Resolver) SearchUsers(ctx context.Context, args struct{ Query string }) ([]*UserResolver, error) {
	var users []portal.User
	err := r.record(ctx, "searchUsers", func() error {
		var qErr error
		users, qErr = r.client.SearchUsers(ctx, args.Query, portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "searchUsers")
	}

	resolvers := make([]*UserResolver, len(users))
	for i := range users {
		resolvers[i] = &UserResolver{r: r, user: &users[i]}
	}
	return resolvers, nil
}

// Group resolves a single group by id
func (r *Resolver) Group(ctx context.Context, args struct{ ID gographql.ID }) (*GroupResolver, error) {
	var group *portal.Group
	err := r.record(ctx, "group", func() error {
		var qErr error
		group, qErr = r.client.FetchGroup(ctx, string(args.ID), portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "group")
	}
	return &GroupResolver{r: r, group: group}, nil
}

// SearchGroups resolves a community group search
func (r *Resolver) SearchGroups(ctx context.Context, args struct{ Query string }) ([]*GroupResolver, error) {
	var groups []portal.Group
	err := r.record(ctx, "searchGroups", func() error {
		var qErr error
		groups, qErr = r.client.SearchGroups(ctx, args.Query, portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "searchGroups")
	}

	resolvers := make([]*GroupResolver, len(groups))
	for i := range groups {
		resolvers[i] = &GroupResolver{r: r, group: &groups[i]}
	}
	return resolvers, nil
}

// Surveys resolves a survey search. Structured arguments compile into the
// portal's boolean query grammar before the search is issued.
func (r *Resolver) Surveys(ctx context.Context, args struct {
	Type   *string
	Groups *[]string
	Q      *string
}) ([]*SurveyResolver, error) {
	filter := portal.SurveyFilter{}
	if args.Type != nil {
		filter.Type = *args.Type
	}
	if args.Groups != nil {
		filter.Groups = *args.Groups
	}
	if args.Q != nil {
		filter.Q = *args.Q
	}
	query := filter.Compile()

	requestLogger(ctx, r.logger).Debug("Survey search", "query", query)

	var items []portal.Item
	err := r.record(ctx, "surveys", func() error {
		var qErr error
		items, qErr = r.client.SearchItems(ctx, query, portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "surveys")
	}

	resolvers := make([]*SurveyResolver, len(items))
	for i := range items {
		resolvers[i] = &SurveyResolver{r: r, item: &items[i]}
	}
	return resolvers, nil
}

// Survey resolves a single survey by item id
func (r *Resolver) Survey(ctx context.Context, args struct{ ID gographql.ID }) (*SurveyResolver, error) {
	var item *portal.Item
	err := r.record(ctx, "survey", func() error {
		var qErr error
		item, qErr = r.client.FetchItem(ctx, string(args.ID), portal.SessionFromContext(ctx))
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "survey")
	}
	return &SurveyResolver{r: r, item: item}, nil
}

// Dataset resolves a record collection by human-readable slug, with an
// optional backend-evaluated join against a second dataset. The join is
// passed through verbatim; its size limit is owned by the backend.
func (r *Resolver) Dataset(ctx context.Context, args struct {
	ID   string
	Join *DatasetJoin
}) (*DatasetResolver, error) {
	endpoint := fmt.Sprintf("%s/datasets/%s?f=json", r.hubURL, url.PathEscape(args.ID))
	if args.Join != nil {
		endpoint += fmt.Sprintf("&join=%s&joinField=%s&targetField=%s",
			url.QueryEscape(args.Join.DatasetID),
			url.QueryEscape(args.Join.JoinField),
			url.QueryEscape(args.Join.TargetField))
	}

	var payload datasetPayload
	err := r.record(ctx, "dataset", func() error {
		return r.client.RawGet(ctx, endpoint, portal.SessionFromContext(ctx), &payload)
	})
	if err != nil {
		return nil, wrapError(err, "dataset")
	}
	if payload.Data.ID == "" {
		return nil, nil
	}
	return &DatasetResolver{payload: payload}, nil
}

// QuickToken mints a portal token from server-side demo credentials.
// Development convenience only; disabled unless credentials are
// configured.
func (r *Resolver) QuickToken(ctx context.Context) (*string, error) {
	if r.demoUsername == "" {
		return nil, &resolutionError{
			message: "quickToken is not configured on this server",
			extensions: map[string]any{
				"code":      "NOT_CONFIGURED",
				"operation": "quickToken",
			},
		}
	}

	var token *portal.Token
	err := r.record(ctx, "quickToken", func() error {
		var qErr error
		token, qErr = r.client.GenerateToken(ctx, r.demoUsername, r.demoPassword)
		return qErr
	})
	if err != nil {
		return nil, wrapError(err, "quickToken")
	}
	return &token.Token, nil
}

// DatasetJoin is the input describing a backend-evaluated dataset join
type DatasetJoin struct {
	DatasetID   string
	JoinField   string
	TargetField string
}
