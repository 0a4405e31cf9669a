package runtime

import (
	"fmt"
	"strings"
)

// The client surfaces three failure kinds, all terminal for the call that
// triggered them: HTTPError for transport-level non-success statuses,
// InvalidResponseError for protocol violations by the server, and
// GraphQLMultiError for GraphQL-level errors returned alongside (possibly
// partial) data. None are retried by this layer.

// HTTPError reports a non-success transport status. Response holds the raw,
// unparsed body.
type HTTPError struct {
	StatusCode int
	Response   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql: server returned HTTP status %d", e.StatusCode)
}

// InvalidResponseError reports a body that could not be parsed as a GraphQL
// response document: not JSON, not an object, or missing the "data" key.
type InvalidResponseError struct {
	Response []byte
}

func (e *InvalidResponseError) Error() string {
	return "graphql: invalid response from server"
}

// Location is a line/column pair in the operation source.
type Location struct {
	Line   int
	Column int
}

// GraphQLError is a single entry of a response's "errors" array.
type GraphQLError struct {
	Message   string
	Path      []any
	Locations []Location
}

func (e GraphQLError) Error() string {
	return e.Message
}

// GraphQLMultiError aggregates the "errors" array of a response. Data
// carries the response's (possibly partial) data for callers who want
// partial results alongside the failure.
type GraphQLMultiError struct {
	Errors []GraphQLError
	Data   map[string]any
}

func (e *GraphQLMultiError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual GraphQL errors to errors.Is/As.
func (e *GraphQLMultiError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ge := range e.Errors {
		errs[i] = ge
	}
	return errs
}

// newGraphQLMultiError builds the aggregate from the decoded "errors" array.
func newGraphQLMultiError(entries []any, data map[string]any) *GraphQLMultiError {
	errs := make([]GraphQLError, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		errs = append(errs, graphQLErrorFromMap(m))
	}
	return &GraphQLMultiError{Errors: errs, Data: data}
}

func graphQLErrorFromMap(m map[string]any) GraphQLError {
	ge := GraphQLError{}
	if msg, ok := m["message"].(string); ok {
		ge.Message = msg
	}
	if path, ok := m["path"].([]any); ok {
		ge.Path = path
	}
	locs, _ := m["locations"].([]any)
	for _, l := range locs {
		lm, ok := l.(map[string]any)
		if !ok {
			continue
		}
		loc := Location{}
		if line, ok := lm["line"].(float64); ok {
			loc.Line = int(line)
		}
		if col, ok := lm["column"].(float64); ok {
			loc.Column = int(col)
		}
		ge.Locations = append(ge.Locations, loc)
	}
	return ge
}
