package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dbouwman/graphql-api/errors"
)

// resolutionError is a field-level GraphQL error with machine-readable
// extensions. graph-gophers surfaces the extensions map on the error entry
// for the specific field that failed; sibling fields keep resolving.
type resolutionError struct {
	message    string
	extensions map[string]any
}

func (e *resolutionError) Error() string {
	return e.message
}

// Extensions implements the ResolverError extension hook.
func (e *resolutionError) Extensions() map[string]any {
	return e.extensions
}

// wrapError converts a portal or classification error into a GraphQL field
// error with an error code, preserving the operation that failed.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Already mapped
	if _, ok := err.(*resolutionError); ok {
		return err
	}

	switch {
	case errors.IsNotFound(err):
		return &resolutionError{
			message: fmt.Sprintf("Not found: %s", err.Error()),
			extensions: map[string]any{
				"code":      "NOT_FOUND",
				"operation": operation,
			},
		}

	case errors.Is(err, context.DeadlineExceeded):
		return &resolutionError{
			message: "Query timeout exceeded",
			extensions: map[string]any{
				"code":      "DEADLINE_EXCEEDED",
				"operation": operation,
			},
		}

	case errors.Is(err, context.Canceled):
		return &resolutionError{
			message: "Query cancelled",
			extensions: map[string]any{
				"code":      "CANCELLED",
				"operation": operation,
			},
		}
	}

	if gqlErr := mapJSONError(err, operation); gqlErr != nil {
		return gqlErr
	}

	if errors.IsTransient(err) {
		return &resolutionError{
			message: fmt.Sprintf("Temporary error: %s", err.Error()),
			extensions: map[string]any{
				"code":      "TRANSIENT_ERROR",
				"operation": operation,
				"retryable": true,
			},
		}
	}

	if errors.IsInvalid(err) {
		return &resolutionError{
			message: fmt.Sprintf("Backend rejected request: %s", err.Error()),
			extensions: map[string]any{
				"code":      "INVALID_INPUT",
				"operation": operation,
			},
		}
	}

	if errors.IsFatal(err) {
		return &resolutionError{
			message: "Internal server error",
			extensions: map[string]any{
				"code":      "INTERNAL_ERROR",
				"operation": operation,
			},
		}
	}

	return &resolutionError{
		message: err.Error(),
		extensions: map[string]any{
			"code":      "QUERY_ERROR",
			"operation": operation,
		},
	}
}

// mapJSONError converts JSON decoding errors to GraphQL errors
func mapJSONError(err error, operation string) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &resolutionError{
			message: "Invalid response format from portal",
			extensions: map[string]any{
				"code":      "INVALID_RESPONSE",
				"operation": operation,
				"offset":    syntaxErr.Offset,
			},
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &resolutionError{
			message: fmt.Sprintf("Invalid response type: expected %s, got %s", typeErr.Type, typeErr.Value),
			extensions: map[string]any{
				"code":      "INVALID_RESPONSE_TYPE",
				"operation": operation,
				"field":     typeErr.Field,
			},
		}
	}

	return nil
}
