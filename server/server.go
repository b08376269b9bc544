// Package server exposes the member operations over HTTP with fiber.
// It is the transport boundary: errors escaping a handler are turned into
// 400 (malformed input) or 500 (backend failure) responses here.
package server

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sicko7947/members"
	"github.com/sicko7947/members/handler"
)

// HeaderRequestID carries the request id in and out of the server
const HeaderRequestID = "X-Request-ID"

const localsRequestID = "request_id"

// Server routes HTTP requests onto a member handler
type Server struct {
	app     *fiber.App
	handler *handler.Handler
	logger  zerolog.Logger
}

// Option configures the server
type Option func(*Server)

// WithLogger sets the logger used for request logs
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server with all routes registered
func New(h *handler.Handler, opts ...Option) *Server {
	s := &Server{
		app:     fiber.New(fiber.Config{AppName: "members"}),
		handler: h,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until the server is shut down
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting at most timeout for in-flight requests
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) registerRoutes() {
	s.app.Use(requestID)

	s.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "members",
		})
	})

	m := s.app.Group("/members")
	m.Get("/", s.adapt(handler.OperationList, s.handler.List))
	m.Post("/", s.adapt(handler.OperationCreate, s.handler.Create))
	m.Get("/:id", s.adapt(handler.OperationGet, s.handler.Get))
	m.Put("/:id", s.adapt(handler.OperationUpdate, s.handler.Update))
	m.Delete("/:id", s.adapt(handler.OperationDelete, s.handler.Delete))
}

// adapt turns an operation into a fiber handler
func (s *Server) adapt(name string, op handler.Operation) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		logger := s.logger.With().Str("request_id", requestIDFrom(c)).Logger()

		req := members.Request{Body: string(c.Body())}
		if raw := c.Params("id"); raw != "" {
			id, err := url.PathUnescape(raw)
			if err != nil {
				err = members.NewMalformedInputError("invalid member id in path", err)
				members.LogMalformedInput(logger, name, err)
				members.LogRequestCompleted(logger, name, fiber.StatusBadRequest, time.Since(start))
				return writeError(c, fiber.StatusBadRequest, err)
			}
			req.PathParameters = map[string]string{members.AttrID: id}
		}

		resp, err := op(c.Context(), req)
		if err != nil {
			status := members.StatusCodeForError(err)
			members.LogRequestCompleted(logger, name, status, time.Since(start))
			return writeError(c, status, err)
		}

		members.LogRequestCompleted(logger, name, resp.StatusCode, time.Since(start))
		return writeResponse(c, resp)
	}
}

func writeResponse(c fiber.Ctx, resp *members.Response) error {
	c.Status(resp.StatusCode)
	if !resp.HasBody() {
		return nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(resp.BodyString())
}

func writeError(c fiber.Ctx, status int, err error) error {
	body := fiber.Map{"error": members.ErrorCode(err)}
	if members.IsMalformedInput(err) {
		body["message"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

func requestID(c fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(HeaderRequestID, id)
	c.Locals(localsRequestID, id)
	return c.Next()
}

func requestIDFrom(c fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}
