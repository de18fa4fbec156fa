package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/rfqflow/internal/adapter/utils"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/metrics"
	"github.com/akolanti/rfqflow/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Chain struct {
	limiter *IPRateLimiter
}

// New builds the request chain; a nil limiter means rate limiting is off.
func New(cfg config.ServerConfig) *Chain {
	chain := &Chain{}
	if cfg.RateLimitOn {
		chain.limiter = NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	return chain
}

func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := c.processRequest(requestResponseStruct{req: r, writer: rec})

		if !handleBadRequest(re) {
			metrics.HttpRequestsTotal.WithLabelValues(utils.GetRoutePattern(r), strconv.Itoa(rec.Status)).Inc()
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(utils.GetRoutePattern(r), strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func (c *Chain) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	if c.limiter != nil {
		re = c.rateLimiter(re)
	}
	return re
}
