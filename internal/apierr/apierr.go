package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind discriminates domain errors raised by the service layer.
type Kind int

const (
	KindNotFound Kind = iota
	KindReadFailed
	KindCreateFailed
	KindUpdateFailed
	KindDeleteFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindReadFailed:
		return "read_failed"
	case KindCreateFailed:
		return "create_failed"
	case KindUpdateFailed:
		return "update_failed"
	case KindDeleteFailed:
		return "delete_failed"
	default:
		return "unknown"
	}
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error is a typed domain error carrying the HTTP status it maps to.
type Error struct {
	Kind     Kind
	Message  string
	Severity Severity
	Status   int
}

func (e *Error) Error() string {
	return e.Message
}

// WithStatus overrides the default status of the error, for operations
// that surface the same failure class under a different code.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Severity: SeverityWarning, Status: fiber.StatusNotFound}
}

func ReadFailed(message string) *Error {
	return &Error{Kind: KindReadFailed, Message: message, Severity: SeverityError, Status: fiber.StatusInternalServerError}
}

func CreateFailed(message string) *Error {
	return &Error{Kind: KindCreateFailed, Message: message, Severity: SeverityError, Status: fiber.StatusInternalServerError}
}

func UpdateFailed(message string) *Error {
	return &Error{Kind: KindUpdateFailed, Message: message, Severity: SeverityError, Status: fiber.StatusBadRequest}
}

func DeleteFailed(message string) *Error {
	return &Error{Kind: KindDeleteFailed, Message: message, Severity: SeverityError, Status: fiber.StatusBadRequest}
}

// Response is the only error shape clients ever receive.
type Response struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// NewResponse builds the wire shape from a status code and description.
// The error field is always the standard reason phrase for the status.
func NewResponse(status int, description string) Response {
	return Response{
		Error:            http.StatusText(status),
		ErrorDescription: description,
	}
}

// FallbackDescription is the only text the fallback handler ever sends.
// Internal error messages stay in the server-side logs.
const FallbackDescription = "An unhandled error occurred. Please contact support if the issue persists."

// ErrorHandler translates every error escaping a handler into the fixed
// two-field JSON shape. Domain errors keep their own status, explicit
// fiber errors pass their status through, anything else becomes a
// generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		// The service already logged the cause at the right severity.
		return c.Status(domainErr.Status).JSON(NewResponse(domainErr.Status, domainErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(NewResponse(fiberErr.Code, fiberErr.Message))
	}

	slog.Error("unhandled error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).
		JSON(NewResponse(fiber.StatusInternalServerError, FallbackDescription))
}
