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
	"context"
	"fmt"
	"path"

	gerrors "github.com/bwsoft/confsync/errors"
)

// PathSpec describes how a logical configuration variable maps onto the
// store: one fully-qualified key (Var) or a key prefix matching zero or more
// entries (Prefix). The set of implementations is closed, and the reads that
// only make sense for one kind live on the concrete type, so a prefix can
// never be resolved as a single key.
type PathSpec interface {
	// Key returns the physical key (or key prefix) this spec resolves against.
	Key() string

	resolve(ctx context.Context, store Store) ([]Entry, error)
}

// Var designates one fully-qualified key.
type Var struct {
	key string
}

// Prefix designates a key prefix.
type Prefix struct {
	key string
}

var (
	_ PathSpec = (*Var)(nil)
	_ PathSpec = (*Prefix)(nil)
)

// NewVar builds a Var whose physical key is base and name joined with a
// single separator. Trailing separators on either input are normalized away.
func NewVar(base, name string) Var {
	return Var{key: path.Join(base, name)}
}

// NewPrefix builds a Prefix whose physical key is base and name joined with
// a single separator. Trailing separators on either input are normalized away.
func NewPrefix(base, name string) Prefix {
	return Prefix{key: path.Join(base, name)}
}

// Key returns the physical key.
func (v Var) Key() string { return v.key }

// Key returns the physical key prefix.
func (p Prefix) Key() string { return p.key }

// Resolve reads the single entry the Var points at. It returns
// errors.ErrKeyNotFound when the store holds no entry for the key; transport
// failures are surfaced as-is.
func (v Var) Resolve(ctx context.Context, store Store) (Entry, error) {
	entry, err := store.Get(ctx, v.key)
	if err != nil {
		return Entry{}, err
	}
	if entry == nil {
		return Entry{}, fmt.Errorf("key %q: %w", v.key, gerrors.ErrKeyNotFound)
	}
	return *entry, nil
}

// Resolve reads every entry under the prefix, in the store's lexicographic
// key order. An empty result is not an error.
func (p Prefix) Resolve(ctx context.Context, store Store) ([]Entry, error) {
	return store.GetPrefix(ctx, p.key)
}

func (v Var) resolve(ctx context.Context, store Store) ([]Entry, error) {
	entry, err := v.Resolve(ctx, store)
	if err != nil {
		return nil, err
	}
	return []Entry{entry}, nil
}

func (p Prefix) resolve(ctx context.Context, store Store) ([]Entry, error) {
	return p.Resolve(ctx, store)
}
