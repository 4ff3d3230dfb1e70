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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &Config{
			URL:            "nats://127.0.0.1:4222",
			SubjectPrefix:  defaultSubjectPrefix,
			ConnectTimeout: 5 * time.Second,
			MaxRetries:     5,
		}

		require.NoError(t, config.Validate())
	})

	t.Run("empty url", func(t *testing.T) {
		config := &Config{}
		require.Error(t, config.Validate())
	})

	t.Run("wildcard in subject prefix", func(t *testing.T) {
		config := &Config{
			URL:            "nats://127.0.0.1:4222",
			SubjectPrefix:  "conf#sync",
			ConnectTimeout: 5 * time.Second,
			MaxRetries:     5,
		}

		require.Error(t, config.Validate())
	})
}

func TestConfigSanitize(t *testing.T) {
	config := &Config{}
	config.Sanitize()

	require.Equal(t, defaultSubjectPrefix, config.SubjectPrefix)
	require.Equal(t, 5*time.Second, config.ConnectTimeout)
	require.Equal(t, 5, config.MaxRetries)
	require.Equal(t, 2*time.Second, config.RetryMaxDelay)

	config = &Config{
		SubjectPrefix:  "custom",
		ConnectTimeout: 2 * time.Second,
		MaxRetries:     3,
		RetryMaxDelay:  time.Second,
	}
	config.Sanitize()

	require.Equal(t, "custom", config.SubjectPrefix)
	require.Equal(t, 2*time.Second, config.ConnectTimeout)
	require.Equal(t, 3, config.MaxRetries)
	require.Equal(t, time.Second, config.RetryMaxDelay)
}
