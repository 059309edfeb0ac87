package graphql

import (
	"context"
	"slices"

	gographql "github.com/graph-gophers/graphql-go"

	"github.com/dbouwman/graphql-api/portal"
)

// draftKeyword marks a survey item as an unpublished draft.
const draftKeyword = "Draft"

// SurveyResolver resolves a form-type item. It shares the projection and
// owner semantics of Item and adds the formInfo and service relations.
type SurveyResolver struct {
	r    *Resolver
	item *portal.Item
}

func (sr *SurveyResolver) ID() gographql.ID {
	return gographql.ID(sr.item.ID)
}

func (sr *SurveyResolver) Title() string {
	return sr.item.Title
}

func (sr *SurveyResolver) Description() *string {
	return optional(sr.item.Description)
}

func (sr *SurveyResolver) Snippet() *string {
	return optional(sr.item.Snippet)
}

func (sr *SurveyResolver) Type() *string {
	return optional(sr.item.Type)
}

func (sr *SurveyResolver) TypeKeywords() []string {
	return orStrings(sr.item.TypeKeywords)
}

func (sr *SurveyResolver) OwnerUsername() string {
	return sr.item.Owner
}

func (sr *SurveyResolver) Owner(ctx context.Context) (*UserResolver, error) {
	return resolveOwner(ctx, sr.r, sr.item.Owner)
}

func (sr *SurveyResolver) Thumbnail() *string {
	return optional(sr.item.Thumbnail)
}

func (sr *SurveyResolver) Created() *float64 {
	return msPtr(sr.item.Created)
}

func (sr *SurveyResolver) Modified() *float64 {
	return msPtr(sr.item.Modified)
}

func (sr *SurveyResolver) CreatedISO() *string {
	return isoPtr(sr.item.Created)
}

func (sr *SurveyResolver) ModifiedISO() *string {
	return isoPtr(sr.item.Modified)
}

func (sr *SurveyResolver) Access() *string {
	return optional(sr.item.Access)
}

// FormInfo resolves the published form's scheduling status. Draft surveys
// never have published form metadata, so the relation short-circuits to
// an empty schedule with zero backend calls.
func (sr *SurveyResolver) FormInfo(ctx context.Context) (*FormInfoResolver, error) {
	if slices.Contains(sr.item.TypeKeywords, draftKeyword) {
		return &FormInfoResolver{}, nil
	}

	var payload formInfoPayload
	endpoint := formInfoURL(sr.r.client.PortalURL(), sr.item.ID)
	if err := sr.r.client.RawGet(ctx, endpoint, portal.SessionFromContext(ctx), &payload); err != nil {
		return nil, wrapError(err, "Survey.formInfo")
	}
	return &FormInfoResolver{info: payload.Settings.OpenStatusInfo}, nil
}

// Service resolves the feature service related to this survey, if any.
// A missing relation resolves to nothing, and so does a lookup failure:
// the relation is optional enrichment, not a required edge.
func (sr *SurveyResolver) Service(ctx context.Context) *FeatureServiceResolver {
	var payload relatedItemsPayload
	endpoint := relatedItemsURL(sr.r.client.PortalURL(), sr.item.ID)
	if err := sr.r.client.RawGet(ctx, endpoint, portal.SessionFromContext(ctx), &payload); err != nil {
		requestLogger(ctx, sr.r.logger).Warn("Related service lookup failed",
			"item", sr.item.ID,
			"error", err)
		return nil
	}

	if len(payload.RelatedItems) == 0 {
		return nil
	}
	return &FeatureServiceResolver{r: sr.r, item: &payload.RelatedItems[0]}
}

// formInfoPayload is the form.json envelope; only the open-status block
// is projected.
type formInfoPayload struct {
	Settings struct {
		OpenStatusInfo openStatusInfo `json:"openStatusInfo"`
	} `json:"settings"`
}

type openStatusInfo struct {
	Status   string         `json:"status"`
	Schedule surveySchedule `json:"schedule"`
}

type surveySchedule struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// relatedItemsPayload is the related-items envelope.
type relatedItemsPayload struct {
	RelatedItems []portal.Item `json:"relatedItems"`
}

// FormInfoResolver projects a survey's open-status info. The zero value
// is the empty schedule used for drafts.
type FormInfoResolver struct {
	info openStatusInfo
}

func (fr *FormInfoResolver) Status() *string {
	return optional(fr.info.Status)
}

func (fr *FormInfoResolver) Schedule() *SurveyScheduleResolver {
	return &SurveyScheduleResolver{schedule: fr.info.Schedule}
}

// SurveyScheduleResolver projects a form's open/close window.
type SurveyScheduleResolver struct {
	schedule surveySchedule
}

func (scr *SurveyScheduleResolver) Start() *string {
	return scr.schedule.Start
}

func (scr *SurveyScheduleResolver) End() *string {
	return scr.schedule.End
}
