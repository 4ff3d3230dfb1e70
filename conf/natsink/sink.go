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

// Package natsink publishes configuration changes to NATS subjects.
package natsink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"

	"github.com/bwsoft/confsync/conf"
	gerrors "github.com/bwsoft/confsync/errors"
	"github.com/bwsoft/confsync/internal/validation"
)

// changeMessage is the wire form of one published change.
type changeMessage struct {
	Action string `json:"action"`
	Key    string `json:"key"`
	Value  string `json:"value,omitempty"`
	Leased bool   `json:"leased,omitempty"`
}

// Sink forwards configuration changes to NATS. Each change is published to
// a subject derived from the store key: the configured prefix followed by
// the key with every '/' replaced by '.'. Keys containing NATS wildcard
// characters or empty segments are rejected with gerrors.ErrInvalidSubject.
type Sink struct {
	config      *Config
	conn        *nats.Conn
	publishFunc func(subject string, payload []byte) error
}

// Ensure Sink implements conf.ChangeSink.
var _ conf.ChangeSink = (*Sink)(nil)

// NewSink connects to the configured NATS server and returns a ready Sink.
func NewSink(config *Config) (*Sink, error) {
	return newSink(config, connect)
}

func newSink(config *Config, connectFunc func(*Config) (*nats.Conn, error)) (*Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("conf/natsink: %w", gerrors.ErrConfigNil)
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if connectFunc == nil {
		connectFunc = connect
	}

	conn, err := connectFunc(config)
	if err != nil {
		return nil, fmt.Errorf("conf/natsink: failed to connect to nats server: %w", err)
	}

	return &Sink{
		config:      config,
		conn:        conn,
		publishFunc: conn.Publish,
	}, nil
}

func connect(config *Config) (*nats.Conn, error) {
	var conn *nats.Conn
	retrier := retry.NewRetrier(config.MaxRetries, 100*time.Millisecond, config.RetryMaxDelay)
	err := retrier.Run(func() error {
		var err error
		conn, err = nats.Connect(config.URL, nats.Timeout(config.ConnectTimeout))
		return err
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Notify implements conf.ChangeSink. A nil operation is a no-op. Publishing
// is retried with backoff up to the configured maximum before the failure is
// reported.
func (s *Sink) Notify(ctx context.Context, op conf.Operation) error {
	var message changeMessage
	switch op := op.(type) {
	case nil:
		return nil
	case conf.Set:
		message = changeMessage{Action: "set", Key: op.Key, Value: op.Value, Leased: op.WithLease}
	case conf.DelKey:
		message = changeMessage{Action: "delete", Key: op.Key}
	case conf.DelPrefix:
		message = changeMessage{Action: "delete_prefix", Key: op.Prefix}
	default:
		return fmt.Errorf("conf/natsink: unsupported operation type %T", op)
	}

	subject, err := s.subjectFor(message.Key)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("conf/natsink: failed to encode change: %w", err)
	}

	retrier := retry.NewRetrier(s.config.MaxRetries, 100*time.Millisecond, s.config.RetryMaxDelay)
	err = retrier.RunContext(ctx, func(context.Context) error {
		return s.publishFunc(subject, payload)
	})
	if err != nil {
		return fmt.Errorf("conf/natsink: failed to publish to %q: %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the NATS connection.
func (s *Sink) Close() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Flush()
	s.conn.Close()
	return err
}

func (s *Sink) subjectFor(key string) (string, error) {
	if err := validation.NewSubjectValidator(key).Validate(); err != nil {
		return "", errors.Join(gerrors.ErrInvalidSubject, err)
	}
	return s.config.SubjectPrefix + "." + strings.ReplaceAll(key, "/", "."), nil
}
