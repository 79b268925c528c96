// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"regexp"
	"time"
)

// findSubmatch evaluates re against text under an execution bound. The match
// runs on its own goroutine; if it has not produced a result within timeout
// the caller gets ErrMatchTimeout instead of blocking indefinitely. A nil
// slice with a nil error means the pattern simply did not match.
func findSubmatch(re *regexp.Regexp, text string, timeout time.Duration) ([]string, error) {
	done := make(chan []string, 1)
	go func() {
		done <- re.FindStringSubmatch(text)
	}()

	select {
	case m := <-done:
		return m, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w: pattern %q", ErrMatchTimeout, re.String())
	}
}
