// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🔧 countingOperation records executions and optionally fails
type countingOperation struct {
	count *atomic.Int32
	fail  bool
}

func (op *countingOperation) Execute(ctx context.Context) error {
	op.count.Add(1)
	if op.fail {
		return errors.New("boom")
	}
	return nil
}

func TestRunner_Sync(t *testing.T) {
	logger := zerolog.New(io.Discard)
	runner := NewRunner(&logger, false)

	var count atomic.Int32
	ops := []Operation{
		&countingOperation{count: &count},
		&countingOperation{count: &count},
		&countingOperation{count: &count},
	}

	require.NoError(t, runner.Run(context.Background(), ops...))
	assert.Equal(t, int32(3), count.Load())
}

func TestRunner_SyncStopsOnError(t *testing.T) {
	logger := zerolog.New(io.Discard)
	runner := NewRunner(&logger, false)

	var count atomic.Int32
	ops := []Operation{
		&countingOperation{count: &count},
		&countingOperation{count: &count, fail: true},
		&countingOperation{count: &count},
	}

	err := runner.Run(context.Background(), ops...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, int32(2), count.Load(), "operations after the failure must not run")
}

func TestRunner_Async(t *testing.T) {
	logger := zerolog.New(io.Discard)
	runner := NewRunner(&logger, true)

	var count atomic.Int32
	ops := make([]Operation, 10)
	for i := range ops {
		ops[i] = &countingOperation{count: &count}
	}

	require.NoError(t, runner.Run(context.Background(), ops...))
	assert.Equal(t, int32(10), count.Load())
}

func TestRunner_AsyncPropagatesError(t *testing.T) {
	logger := zerolog.New(io.Discard)
	runner := NewRunner(&logger, true)

	var count atomic.Int32
	ops := []Operation{
		&countingOperation{count: &count},
		&countingOperation{count: &count, fail: true},
	}

	err := runner.Run(context.Background(), ops...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
