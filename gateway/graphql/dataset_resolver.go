package graphql

import "github.com/dbouwman/graphql-api/pkg/timestamp"

// datasetPayload is the hub dataset envelope. Attributes are kept as an
// open map; only well-known keys are lifted to dedicated fields.
type datasetPayload struct {
	Data struct {
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
}

// DatasetResolver projects a hub dataset record.
type DatasetResolver struct {
	payload datasetPayload
}

func (dr *DatasetResolver) ID() string {
	return dr.payload.Data.ID
}

func (dr *DatasetResolver) Name() *string {
	return dr.attributeString("name")
}

func (dr *DatasetResolver) Slug() *string {
	return dr.attributeString("slug")
}

func (dr *DatasetResolver) Description() *string {
	return dr.attributeString("description")
}

func (dr *DatasetResolver) RecordCount() *int32 {
	raw, ok := dr.payload.Data.Attributes["recordCount"]
	if !ok {
		return nil
	}
	// JSON numbers decode as float64. Anything else in this slot is a
	// malformed attribute; treat it as absent.
	count, ok := raw.(float64)
	if !ok {
		return nil
	}
	value := int32(count)
	return &value
}

func (dr *DatasetResolver) Attributes() JSONValue {
	return NewJSONValue(dr.payload.Data.Attributes)
}

// UpdatedISO surfaces the dataset's last update time when the backend
// provides one, normalized through the shared timestamp formatting.
func (dr *DatasetResolver) UpdatedISO() *string {
	raw, ok := dr.payload.Data.Attributes["modified"]
	if !ok {
		return nil
	}
	return optional(timestamp.ISO(timestamp.Parse(raw)))
}

func (dr *DatasetResolver) attributeString(key string) *string {
	raw, ok := dr.payload.Data.Attributes[key]
	if !ok {
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil
	}
	return optional(value)
}
