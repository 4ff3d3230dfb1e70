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

package natsink

import (
	"strings"
	"time"

	"github.com/bwsoft/confsync/internal/validation"
)

const defaultSubjectPrefix = "confsync"

// Config holds configuration for the NATS change sink.
type Config struct {
	// URL is the NATS server URL (e.g. nats://127.0.0.1:4222).
	URL string
	// SubjectPrefix prefixes every published subject. Defaults to confsync.
	SubjectPrefix string
	// ConnectTimeout sets the timeout for establishing the NATS connection.
	ConnectTimeout time.Duration
	// MaxRetries bounds how many times a failed publish is retried before
	// the notification is reported as failed. Defaults to 5.
	MaxRetries int
	// RetryMaxDelay caps the backoff between publish retries.
	RetryMaxDelay time.Duration
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(strings.TrimSpace(c.URL) != "", "URL must not be empty").
		AddValidator(validation.NewSubjectValidator(c.SubjectPrefix)).
		AddAssertion(c.ConnectTimeout > 0, "ConnectTimeout must be greater than 0").
		AddAssertion(c.MaxRetries > 0, "MaxRetries must be greater than 0").
		Validate()
}

// Sanitize sets defaults for empty fields.
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.SubjectPrefix) == "" {
		c.SubjectPrefix = defaultSubjectPrefix
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 5
	}
	if c.RetryMaxDelay == 0 {
		c.RetryMaxDelay = 2 * time.Second
	}
}
