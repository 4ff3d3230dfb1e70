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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/bwsoft/confsync/errors"
)

func TestKeyJoin(t *testing.T) {
	testCases := []struct {
		base     string
		name     string
		expected string
	}{
		{"local", "node", "local/node"},
		{"local/", "node", "local/node"},
		{"local", "/node", "local/node"},
		{"local/", "/node", "local/node"},
		{"local/node/", "leased/", "local/node/leased"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, NewVar(testCase.base, testCase.name).Key())
		assert.Equal(t, testCase.expected, NewPrefix(testCase.base, testCase.name).Key())
	}
}

func TestVarResolve(t *testing.T) {
	t.Run("existing key", func(t *testing.T) {
		store := newFakeStore()
		store.preload(Entry{Key: "local/node", Value: "value"})

		entry, err := NewVar("local", "node").Resolve(t.Context(), store)
		require.NoError(t, err)
		assert.Equal(t, Entry{Key: "local/node", Value: "value"}, entry)
	})

	t.Run("absent key is a typed error", func(t *testing.T) {
		store := newFakeStore()

		_, err := NewVar("local", "missing").Resolve(t.Context(), store)
		require.Error(t, err)
		assert.True(t, errors.Is(err, gerrors.ErrKeyNotFound))
		assert.Contains(t, err.Error(), "local/missing")
	})
}

func TestPrefixResolve(t *testing.T) {
	t.Run("lexicographic order", func(t *testing.T) {
		store := newFakeStore()
		store.preload(
			Entry{Key: "local/node/b", Value: "2"},
			Entry{Key: "local/node/a", Value: "1"},
			Entry{Key: "local/node/c", Value: "3"},
			Entry{Key: "other/key", Value: "x"},
		)

		entries, err := NewPrefix("local", "node").Resolve(t.Context(), store)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "local/node/a", entries[0].Key)
		assert.Equal(t, "local/node/b", entries[1].Key)
		assert.Equal(t, "local/node/c", entries[2].Key)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		store := newFakeStore()

		entries, err := NewPrefix("local", "node").Resolve(t.Context(), store)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
