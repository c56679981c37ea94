package httpclient

// Package httpclient builds the process-wide HTTP client: one connection
// pool with bounded retry on transient server errors, shared by the page
// scraper, the authenticator and the video resolver.

import (
	"context"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/submeta-tools/submeta-dl/internal/config"
)

// New returns an *http.Client retrying at most cfg.MaxRetries times on
// the transient status set, with exponential backoff scaled by
// cfg.BackoffFactor. Each individual attempt is bounded by
// cfg.RequestTimeout; a timed-out attempt is reported, not retried.
func New(cfg *config.Config, logger *logrus.Logger) *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.HTTPClient.Timeout = cfg.RequestTimeout
	client.Logger = nil
	client.Backoff = backoffFunc(cfg.BackoffFactor)
	client.CheckRetry = checkRetryFunc(cfg)

	if logger != nil {
		client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				logger.Warnf("Retrying %s %s (attempt %d)", req.Method, req.URL, attempt+1)
			}
		}
	}

	return client.StandardClient()
}

// backoffFunc mirrors the usual backoff-factor scheme: the n-th retry
// sleeps factor * 2^n seconds, capped at max.
func backoffFunc(factor float64) retryablehttp.Backoff {
	return func(min, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := time.Duration(factor * math.Pow(2, float64(attemptNum)) * float64(time.Second))
		if wait > max {
			wait = max
		}
		return wait
	}
}

// checkRetryFunc retries only the configured status codes and plain
// connection errors. Timeouts and context cancellation end the request.
func checkRetryFunc(cfg *config.Config) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return false, err
			}
			return true, nil
		}

		return cfg.IsRetryStatus(resp.StatusCode), nil
	}
}
