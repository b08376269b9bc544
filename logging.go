package members

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log event names
const (
	// Operation events
	EventMemberListed           = "member_listed"
	EventMemberFetched          = "member_fetched"
	EventMemberNotFound         = "member_not_found"
	EventMemberCreated          = "member_created"
	EventMemberUpdated          = "member_updated"
	EventMemberIdentityConflict = "member_identity_conflict"
	EventMemberDeleted          = "member_deleted"

	// Failure events
	EventBackendError   = "backend_error"
	EventMalformedInput = "malformed_input"

	// Transport events
	EventRequestCompleted = "request_completed"
)

// LogMemberListed logs a completed List operation
func LogMemberListed(logger zerolog.Logger, count int) {
	logger.Debug().
		Str("event", EventMemberListed).
		Int("count", count).
		Msg("Members listed")
}

// LogMemberFetched logs a successful Get operation
func LogMemberFetched(logger zerolog.Logger, memberID string) {
	logger.Debug().
		Str("event", EventMemberFetched).
		Str("member_id", memberID).
		Msg("Member fetched")
}

// LogMemberNotFound logs a lookup that found no record
func LogMemberNotFound(logger zerolog.Logger, memberID string) {
	logger.Info().
		Str("event", EventMemberNotFound).
		Str("member_id", memberID).
		Msg("Member not found")
}

// LogMemberCreated logs a completed Create operation
func LogMemberCreated(logger zerolog.Logger, memberID string) {
	logger.Info().
		Str("event", EventMemberCreated).
		Str("member_id", memberID).
		Msg("Member created")
}

// LogMemberUpdated logs a completed Update operation
func LogMemberUpdated(logger zerolog.Logger, memberID string) {
	logger.Info().
		Str("event", EventMemberUpdated).
		Str("member_id", memberID).
		Msg("Member updated")
}

// LogMemberIdentityConflict logs an update whose body id disagrees with the stored record
func LogMemberIdentityConflict(logger zerolog.Logger, existingID, bodyID string) {
	logger.Warn().
		Str("event", EventMemberIdentityConflict).
		Str("member_id", existingID).
		Str("body_id", bodyID).
		Msg("Member identity conflict")
}

// LogMemberDeleted logs a completed Delete operation
func LogMemberDeleted(logger zerolog.Logger, memberID string) {
	logger.Info().
		Str("event", EventMemberDeleted).
		Str("member_id", memberID).
		Msg("Member deleted")
}

// LogBackendError logs a failed storage call
func LogBackendError(logger zerolog.Logger, operation, memberID string, err error) {
	logger.Error().
		Str("event", EventBackendError).
		Str("operation", operation).
		Str("member_id", memberID).
		Err(err).
		Msg("Backend error")
}

// LogMalformedInput logs a request body that could not be decoded
func LogMalformedInput(logger zerolog.Logger, operation string, err error) {
	logger.Warn().
		Str("event", EventMalformedInput).
		Str("operation", operation).
		Err(err).
		Msg("Malformed input")
}

// LogRequestCompleted logs a request once the transport has answered it
func LogRequestCompleted(logger zerolog.Logger, operation string, status int, duration time.Duration) {
	logger.Info().
		Str("event", EventRequestCompleted).
		Str("operation", operation).
		Int("status", status).
		Dur("duration", duration).
		Msg("Request completed")
}

// MemberLogger creates a logger enriched with operation context
func MemberLogger(baseLogger zerolog.Logger, operation, memberID string) zerolog.Logger {
	ctx := baseLogger.With().Str("operation", operation)
	if memberID != "" {
		ctx = ctx.Str("member_id", memberID)
	}
	return ctx.Logger()
}

// NewLogger builds a process logger. format is "json" or "console";
// an unknown level falls back to info.
func NewLogger(level, format string) zerolog.Logger {
	return newLogger(os.Stdout, level, format)
}

func newLogger(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	w := out
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}
