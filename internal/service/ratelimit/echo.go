package ratelimit

import (
	"math"
	"strconv"
	"time"

	xhttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DenyFunc writes the response for a rejected request.
type DenyFunc func(c echo.Context, retryAfter time.Duration) error

// Middleware admits requests per client IP. Store failures let the request
// through and are logged.
func Middleware(l *Limiter, log *applogger.Logger, deny DenyFunc) echo.MiddlewareFunc {
	if log == nil {
		log = applogger.NewNop()
	}
	if deny == nil {
		deny = func(c echo.Context, retry time.Duration) error {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded, try again later").
				WithParam("retry_after_seconds", retrySeconds(retry)))
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !l.Enabled() {
			return next
		}
		return func(c echo.Context) error {
			res, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn("ratelimit.store error", applogger.Error(err))
				return next(c)
			}
			if !res.Allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retrySeconds(res.RetryAfter)))
				return deny(c, res.RetryAfter)
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			return next(c)
		}
	}
}

func retrySeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
