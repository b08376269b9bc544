package members

import "encoding/json"

// Decoder decodes raw bytes into v, like json.Unmarshal
type Decoder func(data []byte, v interface{}) error

// Parser turns a raw request body into a Member
type Parser func(body string) (Member, error)

// ParseWith builds a Parser around decode. Every failure is reported as
// ErrMalformedInput; apart from requiring a string id the decoded fields are
// not inspected.
func ParseWith(decode Decoder) Parser {
	return func(body string) (Member, error) {
		var member Member
		if err := decode([]byte(body), &member); err != nil {
			return nil, NewMalformedInputError("invalid request body", err)
		}
		if member == nil {
			return nil, NewMalformedInputError("request body must be an object", nil)
		}
		if member.ID() == "" {
			return nil, NewMalformedInputError("member id is required", nil)
		}
		return member, nil
	}
}

// ParseJSON decodes a JSON request body
var ParseJSON = ParseWith(json.Unmarshal)
