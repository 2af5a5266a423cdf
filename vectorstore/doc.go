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


// Package vectorstore provides the embedding index gateway: a lazily opened,
// identity-cached connection to a vector store, wrapped in a shared Index
// that every ingestion pipeline and query agent in the process uses.
//
// Two backend implementations exist:
//
//   - vectorstore/postgres: production storage on PostgreSQL with pgvector
//   - vectorstore/memory: in-process storage for tests and embedded use
//
// The Gateway opens its backend at most once; a connection failure is cached
// and surfaced to every caller, never retried automatically. The Index
// serializes writers against readers with a read/write lock so ingestion and
// analysis cannot interleave mutation with retrieval.
package vectorstore
