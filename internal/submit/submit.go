// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package submit delivers completed order records to the submission endpoint.
// The record is serialized to wire-format JSON and POSTed unmodified; the
// engine never inspects the response beyond its status. Failures are
// classified so the CLI can map them to distinct exit codes.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pdiddy/dme-engine/pkg/types"
)

// Sentinel errors classifying submission failures.
var (
	// ErrSerialize marks a record that could not be encoded to wire JSON.
	ErrSerialize = errors.New("serializing order record")

	// ErrTransportTimeout marks a request that exceeded its deadline.
	ErrTransportTimeout = errors.New("submission timed out")

	// ErrTransport marks any other delivery failure, including non-2xx
	// responses and connection errors.
	ErrTransport = errors.New("submission failed")
)

const defaultTimeout = 30 * time.Second

// Submitter hands one order record to a submission channel.
type Submitter interface {
	Submit(ctx context.Context, rec *types.OrderRecord) error
}

// HTTPSubmitter POSTs order records as JSON to a configured endpoint.
type HTTPSubmitter struct {
	client *http.Client
	cfg    types.SubmitConfig
}

// NewHTTPSubmitter builds a submitter from cfg, applying the default request
// timeout when none is configured.
func NewHTTPSubmitter(cfg types.SubmitConfig) *HTTPSubmitter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSubmitter{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
	}
}

// Submit serializes rec and POSTs it to the endpoint. Retryable HTTP
// statuses (429, 503) are retried with backoff inside the transport; any
// other non-2xx response is ErrTransport. A 2xx response is success and the
// body is discarded.
func (s *HTTPSubmitter) Submit(ctx context.Context, rec *types.OrderRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	if s.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	}

	resp, err := doWithRetry(ctx, s.client, req, s.cfg.MaxRetries)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTransportTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %s", ErrTransport, resp.Status)
	}
	return nil
}

// isTimeout reports whether err is a deadline or network timeout rather than
// a plain delivery failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
