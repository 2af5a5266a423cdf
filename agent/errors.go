// Copyright 2026 Procurelens Authors
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

package agent

import "errors"

var (
	// ErrIndexRequired indicates that a nil index was passed to a
	// constructor.
	ErrIndexRequired = errors.New("index is required")

	// ErrGeneratorRequired indicates that a nil generator was passed to
	// a constructor.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrUnknownRole indicates that a task referenced a role key with no
	// built-in role behind it.
	ErrUnknownRole = errors.New("unknown role")

	// ErrNoTasks indicates that RunAll was invoked with an empty task
	// batch.
	ErrNoTasks = errors.New("no tasks to run")
)
