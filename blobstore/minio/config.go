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


package minio

import "errors"

// Config holds connection settings for an S3-compatible object store.
type Config struct {
	// Endpoint is the host:port of the object store.
	// Example: "localhost:9000"
	Endpoint string

	// AccessKey and SecretKey are the static credentials.
	AccessKey string
	SecretKey string

	// Bucket is the bucket holding uploaded procurement files.
	// Default: "procurement-data".
	Bucket string

	// UseSSL enables TLS for the connection.
	UseSSL bool
}

// DefaultConfig returns a Config with defaults for a local MinIO instance.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "procurement-data",
		UseSSL:    false,
	}
}

// Validate checks that the configuration is valid and complete,
// filling defaulted fields.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("minio config: Endpoint is required")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.New("minio config: credentials are required")
	}
	if c.Bucket == "" {
		c.Bucket = "procurement-data"
	}
	return nil
}
