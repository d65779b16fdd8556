package middleware

import (
	"net/url"
	"strings"
	"todo-api/internal/domain/gateway/session"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"

	"github.com/labstack/echo/v4"
)

const signedCookiePrefix = "s:"

// Session resolves the caller of the session cookie and stores it in the request context.
// Requests without a valid session go through without a caller.
func Session(gateway session.SessionGateway, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			req := c.Request()
			caller, err := gateway.FindCaller(req.Context(), SessionID(cookie.Value))
			if err != nil {
				log.Warn(msg.GetMessage("session.error.lookup-failed", err))
				return next(c)
			}
			if caller != nil {
				c.SetRequest(req.WithContext(model.WithCaller(req.Context(), *caller)))
			}
			return next(c)
		}
	}
}

// SessionID extracts the session id from a cookie value. Signed cookies have the
// form s:<id>.<signature>, possibly URL encoded.
func SessionID(cookieValue string) string {
	value, err := url.QueryUnescape(cookieValue)
	if err != nil {
		value = cookieValue
	}

	if !strings.HasPrefix(value, signedCookiePrefix) {
		return value
	}

	value = strings.TrimPrefix(value, signedCookiePrefix)
	if i := strings.LastIndex(value, "."); i >= 0 {
		value = value[:i]
	}
	return value
}
