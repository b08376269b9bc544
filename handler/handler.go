package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sicko7947/members"
)

// Operation names
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Operation handles one trigger and produces its response.
// Malformed bodies and backend failures are returned as errors for the
// transport to translate; not-found and identity conflicts are responses.
type Operation func(ctx context.Context, req members.Request) (*members.Response, error)

// Handler serves the member operations over a MemberStore
type Handler struct {
	store  members.MemberStore
	logger zerolog.Logger
	parse  members.Parser

	ok         members.ResponseBuilder
	created    members.ResponseBuilder
	noContent  members.ResponseBuilder
	badRequest members.ResponseBuilder
	notFound   members.ResponseBuilder
}

// Option configures the handler
type Option func(*Handler)

// WithLogger sets a custom logger for the handler
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithParser replaces the JSON request parser
func WithParser(parse members.Parser) Option {
	return func(h *Handler) {
		h.parse = parse
	}
}

// NewHandler creates a handler over store.
// If no logger is provided, a default stdout logger with Info level is used
func NewHandler(store members.MemberStore, opts ...Option) *Handler {
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	h := &Handler{
		store:      store,
		logger:     defaultLogger,
		parse:      members.ParseJSON,
		ok:         members.WithStatusCode(http.StatusOK, members.SerializeJSON),
		created:    members.WithStatusCode(http.StatusCreated, nil),
		noContent:  members.WithStatusCode(http.StatusNoContent, nil),
		badRequest: members.WithStatusCode(http.StatusBadRequest, nil),
		notFound:   members.WithStatusCode(http.StatusNotFound, nil),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Operation looks up an operation by name
func (h *Handler) Operation(name string) (Operation, error) {
	switch name {
	case OperationList:
		return h.List, nil
	case OperationGet:
		return h.Get, nil
	case OperationCreate:
		return h.Create, nil
	case OperationUpdate:
		return h.Update, nil
	case OperationDelete:
		return h.Delete, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", name)
	}
}

// List returns every member
func (h *Handler) List(ctx context.Context, req members.Request) (*members.Response, error) {
	logger := members.MemberLogger(h.logger, OperationList, "")

	list, err := h.store.List(ctx)
	if err != nil {
		members.LogBackendError(logger, OperationList, "", err)
		return nil, err
	}

	members.LogMemberListed(logger, len(list))
	return h.ok(list)
}

// Get returns the member addressed by the path id, or 404
func (h *Handler) Get(ctx context.Context, req members.Request) (*members.Response, error) {
	id := req.PathID()
	logger := members.MemberLogger(h.logger, OperationGet, id)

	member, found, err := h.store.Get(ctx, id)
	if err != nil {
		members.LogBackendError(logger, OperationGet, id, err)
		return nil, err
	}

	if !found {
		members.LogMemberNotFound(logger, id)
		return h.notFound(nil)
	}

	members.LogMemberFetched(logger, id)
	return h.ok(member)
}

// Create stores the member in the body. An existing member with the same id
// is overwritten.
func (h *Handler) Create(ctx context.Context, req members.Request) (*members.Response, error) {
	logger := members.MemberLogger(h.logger, OperationCreate, "")

	member, err := h.parse(req.Body)
	if err != nil {
		members.LogMalformedInput(logger, OperationCreate, err)
		return nil, err
	}

	if err := h.store.Put(ctx, member); err != nil {
		members.LogBackendError(logger, OperationCreate, member.ID(), err)
		return nil, err
	}

	members.LogMemberCreated(logger, member.ID())
	return h.created(nil)
}

// Update replaces the member addressed by the path id.
// The record must exist (404 otherwise) and the body id must equal the stored
// id (400 otherwise); in both cases nothing is written. The read and the
// write are separate calls, so concurrent updates of one id can overwrite
// each other.
func (h *Handler) Update(ctx context.Context, req members.Request) (*members.Response, error) {
	id := req.PathID()
	logger := members.MemberLogger(h.logger, OperationUpdate, id)

	existing, found, err := h.store.Get(ctx, id)
	if err != nil {
		members.LogBackendError(logger, OperationUpdate, id, err)
		return nil, err
	}

	if !found {
		members.LogMemberNotFound(logger, id)
		return h.notFound(nil)
	}

	member, err := h.parse(req.Body)
	if err != nil {
		members.LogMalformedInput(logger, OperationUpdate, err)
		return nil, err
	}

	if existing.ID() != member.ID() {
		members.LogMemberIdentityConflict(logger, existing.ID(), member.ID())
		return h.badRequest(nil)
	}

	if err := h.store.Put(ctx, member); err != nil {
		members.LogBackendError(logger, OperationUpdate, id, err)
		return nil, err
	}

	members.LogMemberUpdated(logger, id)
	return h.ok(member)
}

// Delete removes the member addressed by the path id. It answers 204 whether
// or not the member existed.
func (h *Handler) Delete(ctx context.Context, req members.Request) (*members.Response, error) {
	id := req.PathID()
	logger := members.MemberLogger(h.logger, OperationDelete, id)

	if err := h.store.Delete(ctx, id); err != nil {
		members.LogBackendError(logger, OperationDelete, id, err)
		return nil, err
	}

	members.LogMemberDeleted(logger, id)
	return h.noContent(nil)
}
