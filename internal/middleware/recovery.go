package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recovery returns middleware that recovers from panics, logs the stack
// trace, and shows the static "Something went wrong" screen. This is the
// only place an unexpected failure turns into a dead end for the user; it
// must stay free of any dependency that could itself fail.
//
// render draws the recovery screen. When it is nil, or fails, a plain-text
// 500 is written instead.
func Recovery(render func(c echo.Context) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				slog.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
					slog.String("request_id", GetRequestID(c)),
				)

				if c.Response().Committed {
					returnErr = nil
					return
				}
				if render != nil {
					if err := render(c); err == nil {
						returnErr = nil
						return
					}
				}
				returnErr = c.String(http.StatusInternalServerError, "Internal Server Error")
			}()

			return next(c)
		}
	}
}
