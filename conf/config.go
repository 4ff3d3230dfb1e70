// MIT License
//
// Copyright (c) 2022-2026 ConfSync Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package conf

import (
	"time"

	"github.com/bwsoft/confsync/internal/validation"
	"github.com/bwsoft/confsync/log"
)

// Config holds the tunables of a Client.
type Config struct {
	// Logger receives client logs. Defaults to log.DefaultLogger.
	Logger log.Logger
	// LeaseTTL is the time-to-live of the client's lease. Keys written with
	// Set.WithLease disappear when the lease is not renewed within this
	// window. Defaults to 10s.
	LeaseTTL time.Duration
	// WatchTick bounds how long one monitor iteration waits for the next
	// watch message before renewing the lease again. Must be shorter than
	// LeaseTTL so a quiet watch stream cannot starve lease renewal.
	// Defaults to 1s.
	WatchTick time.Duration
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(c.LeaseTTL >= time.Second, "LeaseTTL must be at least 1s").
		AddAssertion(c.WatchTick > 0, "WatchTick must be greater than 0").
		AddAssertion(c.WatchTick < c.LeaseTTL, "WatchTick must be shorter than LeaseTTL").
		Validate()
}

// Sanitize sets defaults for empty fields.
func (c *Config) Sanitize() {
	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
	if c.LeaseTTL == 0 {
		c.LeaseTTL = 10 * time.Second
	}
	if c.WatchTick == 0 {
		c.WatchTick = time.Second
	}
}
