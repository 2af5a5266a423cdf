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


package blobstore

import "errors"

var (
	// ErrNotFound is returned when the named object does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrNameRequired is returned when an operation is given an empty object name.
	ErrNameRequired = errors.New("object name required")
)
