// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package submit

import (
	"context"
	"math"
	"net/http"
	"time"
)

// retryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var retryBaseDelay = time.Second

const defaultMaxRetries = 3

// retryableStatus reports whether the endpoint asked us to try again later.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// doWithRetry executes the request and retries on 429 and 503 with
// exponential backoff: retryBaseDelay, then doubling each attempt. When
// maxRetries is 0 the default (3) is used. The request body is rebuilt from
// GetBody on each attempt. If the context is cancelled during a backoff wait
// the function returns ctx.Err(). After exhausting retries the last
// retryable response is returned so the caller can classify it.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		clone := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			clone.Body = body
		}

		resp, err := client.Do(clone)
		if err != nil {
			return nil, err
		}

		if !retryableStatus(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * retryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
