package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"ngo-finance-backend/internal/domain/errs"
)

// HeaderUserID carries the already-authorized acting user.
const HeaderUserID = "X-User-Id"

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorResponse{Error: msg})
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition), errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInsufficientFunds), errors.Is(err, errs.ErrInsufficientBalance), errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("request failed")
		return errorJSON(c, code, "internal server error")
	}
	return errorJSON(c, code, err.Error())
}

// bindValid binds the body into dst and runs the validator.
// ok is false when a response has already been written.
func bindValid(c echo.Context, dst any) (ok bool, err error) {
	if err := c.Bind(dst); err != nil {
		return false, errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return true, nil
}

func parseID(c echo.Context, param string) (uint64, error) {
	return strconv.ParseUint(c.Param(param), 10, 64)
}

func actorID(c echo.Context) (uint64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	if raw == "" {
		return 0, errors.New("missing " + HeaderUserID)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + HeaderUserID)
	}
	return id, nil
}

// withActor resolves the path id and acting user before calling fn.
func withActor(c echo.Context, fn func(id, actor uint64) error) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	return fn(id, actor)
}
