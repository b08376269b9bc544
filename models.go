package members

// AttrID is the attribute holding a member's primary key, both in request
// bodies and in stored items.
const AttrID = "id"

// Member is a single record of the members collection.
// Apart from "id" the fields are opaque: they are stored and returned as given.
type Member map[string]interface{}

// ID returns the member's identifier, or "" when it is missing or not a string.
func (m Member) ID() string {
	if m == nil {
		return ""
	}
	id, _ := m[AttrID].(string)
	return id
}

// Request is the trigger envelope handed to an operation handler.
type Request struct {
	Body           string            `json:"body,omitempty"`
	PathParameters map[string]string `json:"pathParameters,omitempty"`
}

// PathID returns the "id" path parameter.
func (r Request) PathID() string {
	return r.PathParameters[AttrID]
}

// Response is the transport-level result of an operation handler.
// Body is nil when the response carries no payload.
type Response struct {
	StatusCode int     `json:"statusCode"`
	Body       *string `json:"body,omitempty"`
}

// HasBody reports whether the response carries a payload.
func (r *Response) HasBody() bool {
	return r != nil && r.Body != nil
}

// BodyString returns the payload, or "" when there is none.
func (r *Response) BodyString() string {
	if !r.HasBody() {
		return ""
	}
	return *r.Body
}
