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

// Package etcd provides the etcd-backed configuration store transport.
package etcd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/namespace"

	"github.com/bwsoft/confsync/conf"
	gerrors "github.com/bwsoft/confsync/errors"
)

// Store is an etcd-backed implementation of conf.Store.
//
// All keys, leases and watches are scoped to the configured namespace, so
// two stores with distinct namespaces sharing one etcd cluster never see
// each other's data. Unless otherwise stated by the called method, any
// provided context is wrapped with the configured per-operation timeout.
type Store struct {
	config     *Config
	client     *clientv3.Client
	kv         clientv3.KV
	lease      clientv3.Lease
	watcher    clientv3.Watcher
	clientFunc func(clientv3.Config) (*clientv3.Client, error)
	closeFunc  func(*clientv3.Client) error
}

// Ensure Store implements conf.Store.
var _ conf.Store = (*Store)(nil)

// NewStore creates a new Store backed by etcd.
//
// It validates the provided configuration, connects to the first configured
// endpoint, and applies the configured namespace to all keys.
func NewStore(config *Config) (*Store, error) {
	return newStore(config, clientv3.New, func(client *clientv3.Client) error { return client.Close() })
}

func newStore(config *Config, clientFunc func(clientv3.Config) (*clientv3.Client, error), closeFunc func(*clientv3.Client) error) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("conf/etcd: %w", gerrors.ErrConfigNil)
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if clientFunc == nil {
		clientFunc = clientv3.New
	}

	if closeFunc == nil {
		closeFunc = func(client *clientv3.Client) error { return client.Close() }
	}

	client, err := clientFunc(clientv3.Config{
		Endpoints:   config.Endpoints,
		DialTimeout: config.DialTimeout,
		TLS:         config.TLS,
		Username:    config.Username,
		Password:    config.Password,
		Context:     config.Context,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(config.Context, config.DialTimeout)
	defer cancel()

	if _, err = client.Status(ctx, config.Endpoints[0]); err != nil {
		if cerr := closeFunc(client); cerr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close etcd client: %w", cerr))
		}
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	namespacePrefix := normalizeNamespace(config.Namespace)
	return &Store{
		config:     config,
		client:     client,
		kv:         namespace.NewKV(client.KV, namespacePrefix),
		lease:      namespace.NewLease(client.Lease, namespacePrefix),
		watcher:    namespace.NewWatcher(client.Watcher, namespacePrefix),
		clientFunc: clientFunc,
		closeFunc:  closeFunc,
	}, nil
}

// Connect creates a Store from storeConfig and wraps it into a ready-to-use
// conf.Client. The returned client owns the store; closing the client closes
// the underlying etcd connection.
func Connect(storeConfig *Config, clientConfig *conf.Config) (*conf.Client, error) {
	store, err := NewStore(storeConfig)
	if err != nil {
		return nil, err
	}

	client, err := conf.NewClient(store, clientConfig)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}
	return client, nil
}

// Get returns the entry stored under key, or nil when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (*conf.Entry, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.kv.Get(opCtx, key)
	if err != nil {
		return nil, fmt.Errorf("conf/etcd: failed to get key %q: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	entry := toEntry(resp.Kvs[0])
	return &entry, nil
}

// GetPrefix returns every entry whose key starts with prefix, in ascending
// key order.
func (s *Store) GetPrefix(ctx context.Context, prefix string) ([]conf.Entry, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.kv.Get(opCtx, prefix,
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend))
	if err != nil {
		return nil, fmt.Errorf("conf/etcd: failed to get prefix %q: %w", prefix, err)
	}

	entries := make([]conf.Entry, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		entries = append(entries, toEntry(kv))
	}
	return entries, nil
}

// Put stores value under key, attaching lease when it is non-zero.
func (s *Store) Put(ctx context.Context, key, value string, lease int64) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var opts []clientv3.OpOption
	if lease != 0 {
		opts = append(opts, clientv3.WithLease(clientv3.LeaseID(lease)))
	}

	if _, err := s.kv.Put(opCtx, key, value, opts...); err != nil {
		return fmt.Errorf("conf/etcd: failed to put key %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.kv.Delete(opCtx, key); err != nil {
		return fmt.Errorf("conf/etcd: failed to delete key %q: %w", key, err)
	}
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.kv.Delete(opCtx, prefix, clientv3.WithPrefix()); err != nil {
		return fmt.Errorf("conf/etcd: failed to delete prefix %q: %w", prefix, err)
	}
	return nil
}

// LeaseGrant creates a lease with the given time-to-live in seconds and
// returns its id.
func (s *Store) LeaseGrant(ctx context.Context, ttl int64) (int64, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.lease.Grant(opCtx, ttl)
	if err != nil {
		return 0, fmt.Errorf("conf/etcd: failed to create lease: %w", err)
	}
	return int64(resp.ID), nil
}

// LeaseKeepAlive renews the given lease once.
func (s *Store) LeaseKeepAlive(ctx context.Context, lease int64) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.lease.KeepAliveOnce(opCtx, clientv3.LeaseID(lease)); err != nil {
		return fmt.Errorf("conf/etcd: failed to renew lease %d: %w", lease, err)
	}
	return nil
}

// Watch subscribes to changes under prefix and streams them until ctx is
// done or the subscription ends. The returned channel is closed when the
// underlying etcd watch terminates. Watch is not wrapped with the
// per-operation timeout.
func (s *Store) Watch(ctx context.Context, prefix string) (<-chan conf.WatchResponse, error) {
	if ctx == nil {
		ctx = s.config.Context
	}

	responses := make(chan conf.WatchResponse)
	watchChan := s.watcher.Watch(ctx, prefix,
		clientv3.WithPrefix(),
		clientv3.WithCreatedNotify())

	go func() {
		defer close(responses)
		for resp := range watchChan {
			translated := toWatchResponse(resp)
			select {
			case responses <- translated:
			case <-ctx.Done():
				return
			}
			if translated.Canceled || translated.Err != nil {
				return
			}
		}
	}()

	return responses, nil
}

// Close releases resources held by the Store, including the underlying etcd
// client. Close is idempotent.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}

	if s.closeFunc != nil {
		return s.closeFunc(s.client)
	}

	return s.client.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = s.config.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.config.Timeout)
}

func toWatchResponse(resp clientv3.WatchResponse) conf.WatchResponse {
	translated := conf.WatchResponse{
		Created:  resp.Created,
		Canceled: resp.Canceled,
		Err:      resp.Err(),
	}
	if translated.Canceled {
		// a cancelled subscription carries its cause in Err(); the
		// cancellation itself already signals termination
		translated.Err = nil
	}

	for _, ev := range resp.Events {
		switch ev.Type {
		case mvccpb.PUT:
			translated.Events = append(translated.Events, conf.Event{
				Type:  conf.EventPut,
				Entry: toEntry(ev.Kv),
			})
		case mvccpb.DELETE:
			translated.Events = append(translated.Events, conf.Event{
				Type:  conf.EventDelete,
				Entry: conf.Entry{Key: string(ev.Kv.Key)},
			})
		}
	}
	return translated
}

func toEntry(kv *mvccpb.KeyValue) conf.Entry {
	return conf.Entry{
		Key:   string(kv.Key),
		Value: string(kv.Value),
		Lease: kv.Lease,
	}
}

func normalizeNamespace(namespaceValue string) string {
	trimmed := strings.TrimSpace(namespaceValue)
	if trimmed == "" {
		return defaultNamespace + "/"
	}
	if strings.HasSuffix(trimmed, "/") {
		return trimmed
	}
	return trimmed + "/"
}
