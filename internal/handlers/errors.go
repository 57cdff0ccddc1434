package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"postboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Client-facing messages. Internal error details never leave the server.
const (
	errServer         = "Server error"
	errInvalidBody    = "invalid request body"
	errUserExists     = "User already exists"
	errBadCredentials = "Invalid email or password"
	errPostNotFound   = "Post not found"
	errNotOwner       = "User not authorized"
	msgInvalidEmail   = "Please include a valid email"
	msgPostRemoved    = "Post removed"
)

// fieldError is one violated input constraint.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResponse struct {
	Errors []fieldError `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var validatorsOnce sync.Once

// registerValidators makes validator report json field names and adds the
// maxbytes tag.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("maxbytes", maxBytes)
	})
}

// maxBytes limits the encoded length of a string. The built-in max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// bindJSON binds the request body into dst. Constraint violations produce 422
// with per-field messages, undecodable bodies 400. Returns false if the
// response was already written.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		c.JSON(http.StatusUnprocessableEntity, validationResponse{Errors: out})
		return false
	}

	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	c.JSON(http.StatusBadRequest, errorResponse{Error: errInvalidBody})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return msgInvalidEmail
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// respondError maps a service error to its status and client message.
// Unclassified errors are logged under logKey and reported as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	status, msg := classify(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if status == http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(status, errorResponse{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		return http.StatusBadRequest, errUserExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, errBadCredentials
	case errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound, errPostNotFound
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusUnauthorized, errNotOwner
	default:
		return http.StatusInternalServerError, errServer
	}
}
