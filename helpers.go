package members

import "time"

// ToPtr returns a pointer to the given value.
// This is useful for creating pointers to literals or converting values to pointers.
func ToPtr[T any](v T) *T {
	return &v
}

// CalculateBackoff calculates the backoff delay for a retry attempt.
// It supports three strategies:
//   - EXPONENTIAL: baseDelay * 2^(attempt-1)
//   - LINEAR: baseDelay * attempt
//   - NONE: no backoff delay
//
// Returns 0 for attempt 0. Unknown strategies fall back to linear.
func CalculateBackoff(baseDelayMs int, attempt int, strategy string) time.Duration {
	if attempt <= 0 {
		return 0
	}

	baseDelay := time.Duration(baseDelayMs) * time.Millisecond

	switch strategy {
	case "EXPONENTIAL":
		return baseDelay * time.Duration(1<<(attempt-1))
	case "LINEAR":
		return baseDelay * time.Duration(attempt)
	case "NONE":
		return 0
	default:
		return baseDelay * time.Duration(attempt)
	}
}

// Clone returns a deep copy of the member. Nested objects and arrays are
// copied too, so the clone shares no mutable state with m.
func (m Member) Clone() Member {
	if m == nil {
		return nil
	}
	out := make(Member, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Member:
		return val.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Member(val).Clone())
	case []interface{}:
		if val == nil {
			return val
		}
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
