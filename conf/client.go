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

// Package conf implements a client-side synchronization layer between a
// process and a distributed, strongly-consistent key-value store. A Client
// reads configuration under a key prefix, applies locally-decided mutations
// back to the store under a renewable lease, and the Monitor loop keeps the
// process informed of remote changes while renewing the lease.
package conf

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bwsoft/confsync/log"
)

// Client owns the store transport and the client's lease, and exposes the
// read/write primitives plus the Monitor reconcile loop.
//
// A Client is driven by one logical task: the lease id moves from zero to
// its granted value exactly once and is read-only afterwards, so it needs no
// locking as long as the Client is not shared across goroutines.
type Client struct {
	config  *Config
	store   Store
	logger  log.Logger
	name    string
	leaseID int64
}

// NewClient creates a Client over an established store transport. A nil
// config uses defaults.
func NewClient(store Store, config *Config) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("conf: store is required")
	}

	if config == nil {
		config = &Config{}
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		store:  store,
		logger: config.Logger,
		name:   uuid.NewString(),
	}, nil
}

// Name returns the client instance id used in logs.
func (c *Client) Name() string {
	return c.name
}

// LeaseID returns the client's lease id. It is zero until the first leased
// write or the first Monitor call grants the lease.
func (c *Client) LeaseID() int64 {
	return c.leaseID
}

// FetchVars resolves each spec in input order and concatenates the results:
// single vars contribute exactly one entry and fail the whole call with
// errors.ErrKeyNotFound when absent, prefixes contribute zero or more
// entries in lexicographic key order. No partial result is returned on
// error.
func (c *Client) FetchVars(ctx context.Context, specs []PathSpec) ([]Entry, error) {
	var entries []Entry
	for _, spec := range specs {
		resolved, err := spec.resolve(ctx, c.store)
		if err != nil {
			return nil, err
		}
		entries = append(entries, resolved...)
	}
	return entries, nil
}

// Apply ensures the client holds a lease, then applies the operations
// strictly in the given order. A failure at operation i aborts operations
// i+1..n and surfaces the error; operations 0..i-1 stay applied, there is no
// rollback.
func (c *Client) Apply(ctx context.Context, ops []Operation) error {
	if err := c.ensureLease(ctx); err != nil {
		return err
	}

	for _, op := range ops {
		if err := c.apply(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying store transport.
func (c *Client) Close() error {
	return c.store.Close()
}

// ensureLease grants the client's lease on first need. The lease is granted
// exactly once per Client and reused for its lifetime.
func (c *Client) ensureLease(ctx context.Context) error {
	if c.leaseID != 0 {
		return nil
	}

	lease, err := c.store.LeaseGrant(ctx, int64(c.config.LeaseTTL.Seconds()))
	if err != nil {
		return fmt.Errorf("failed to grant lease: %w", err)
	}

	c.leaseID = lease
	c.logger.Infof("client %s granted lease %d (ttl=%s)", c.name, lease, c.config.LeaseTTL)
	return nil
}

func (c *Client) apply(ctx context.Context, op Operation) error {
	switch op := op.(type) {
	case Set:
		var lease int64
		if op.WithLease {
			lease = c.leaseID
		}
		if err := c.store.Put(ctx, op.Key, op.Value, lease); err != nil {
			return fmt.Errorf("failed to set key %q: %w", op.Key, err)
		}
		c.logger.Debugf("set key=%s with_lease=%v", op.Key, op.WithLease)
	case DelKey:
		if err := c.store.Delete(ctx, op.Key); err != nil {
			return fmt.Errorf("failed to delete key %q: %w", op.Key, err)
		}
		c.logger.Debugf("deleted key=%s", op.Key)
	case DelPrefix:
		if err := c.store.DeletePrefix(ctx, op.Prefix); err != nil {
			return fmt.Errorf("failed to delete prefix %q: %w", op.Prefix, err)
		}
		c.logger.Debugf("deleted prefix=%s", op.Prefix)
	case nil:
		// no-op sentinel
	}
	return nil
}
