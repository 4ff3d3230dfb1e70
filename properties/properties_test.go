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

package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwsoft/confsync/conf"
	gerrors "github.com/bwsoft/confsync/errors"
)

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		config, err := Load("testdata/absent.properties")
		require.Error(t, err)
		require.Nil(t, config)
	})

	t.Run("unsplittable line", func(t *testing.T) {
		config, err := Load("testdata/broken.properties")
		require.ErrorIs(t, err, gerrors.ErrLineSplit)
		require.Nil(t, config)
	})

	t.Run("loads in file order", func(t *testing.T) {
		config, err := Load("testdata/producer.properties")
		require.NoError(t, err)
		require.Equal(t, 5, config.Len())
		assert.Equal(t, []string{
			"bootstrap.servers",
			"client.id",
			"acks",
			"retries",
			"linger.ms",
		}, config.Keys())

		value, ok := config.Get("bootstrap.servers")
		require.True(t, ok)
		assert.Equal(t, "broker.local:9092", value)

		_, ok = config.Get("absent.key")
		require.False(t, ok)
	})
}

func TestOperations(t *testing.T) {
	config, err := Load("testdata/producer.properties")
	require.NoError(t, err)

	ops := config.Operations("local/producer")
	require.Len(t, ops, 5)
	assert.Equal(t, conf.Set{Key: "local/producer/bootstrap.servers", Value: "broker.local:9092"}, ops[0])
	assert.Equal(t, conf.Set{Key: "local/producer/acks", Value: "all"}, ops[2])
}
