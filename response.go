package members

import (
	"encoding/json"
	"fmt"
)

// Serializer renders a value as a response body
type Serializer func(v interface{}) (string, error)

// ResponseBuilder produces a Response for an optional value
type ResponseBuilder func(v interface{}) (*Response, error)

// WithStatusCode returns a builder for responses with the given status.
// Without a serializer the response has no body and the value is ignored.
func WithStatusCode(statusCode int, serializer Serializer) ResponseBuilder {
	return func(v interface{}) (*Response, error) {
		if serializer == nil {
			return &Response{StatusCode: statusCode}, nil
		}

		body, err := serializer(v)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize response: %w", err)
		}

		return &Response{
			StatusCode: statusCode,
			Body:       ToPtr(body),
		}, nil
	}
}

// SerializeJSON renders v as JSON
func SerializeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
