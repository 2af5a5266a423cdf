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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/procurelens/procurelens"
	"github.com/procurelens/procurelens/agent"
	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/blobstore/minio"
	"github.com/procurelens/procurelens/ingestion"
	"github.com/procurelens/procurelens/vectorstore"
	"github.com/procurelens/procurelens/vectorstore/postgres"
)

func main() {
	app := &cli.App{
		Name:  "procurelens",
		Usage: "Procurement analytics over uploaded purchasing data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the local data directory",
				Value:   defaultDataDir(),
				EnvVars: []string{"PROCURELENS_DB"},
			},
			&cli.StringFlag{
				Name:    "ollama-host",
				Usage:   "Ollama server URL",
				Value:   "http://localhost:11434",
				EnvVars: []string{"OLLAMA_HOST"},
			},
			&cli.StringFlag{
				Name:    "llm-model",
				Usage:   "Chat model used for analysis",
				Value:   "llama3.2:3b",
				EnvVars: []string{"PROCURELENS_LLM_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model used for indexing and retrieval",
				Value:   "bge-m3:567m",
				EnvVars: []string{"PROCURELENS_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "postgres-dsn",
				Usage:   "Postgres DSN for the pgvector index (in-memory index if unset)",
				EnvVars: []string{"PROCURELENS_POSTGRES_DSN"},
			},
			&cli.StringFlag{
				Name:    "minio-endpoint",
				Usage:   "MinIO endpoint for file storage (local badger store if unset)",
				EnvVars: []string{"PROCURELENS_MINIO_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "minio-access-key",
				Usage:   "MinIO access key",
				Value:   "minioadmin",
				EnvVars: []string{"PROCURELENS_MINIO_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "minio-secret-key",
				Usage:   "MinIO secret key",
				Value:   "minioadmin",
				EnvVars: []string{"PROCURELENS_MINIO_SECRET_KEY"},
			},
			&cli.StringFlag{
				Name:    "minio-bucket",
				Usage:   "MinIO bucket holding uploaded files",
				Value:   "procurement-data",
				EnvVars: []string{"PROCURELENS_MINIO_BUCKET"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Upload and index one or more procurement CSV files",
				ArgsUsage: "FILE...",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Replace previously indexed documents from the same file",
						Value: true,
					},
				},
			},
			{
				Name:   "analyze",
				Usage:  "Run the full six-agent analysis batch and print the reports",
				Action: analyzeCommand,
			},
			{
				Name:      "ask",
				Usage:     "Ask a single analysis role a question",
				ArgsUsage: "QUERY",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Usage:    "Role key (supplier, spend, risk, contract, po, compliance)",
						Required: true,
					},
				},
			},
			{
				Name:  "files",
				Usage: "Manage uploaded files",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List uploaded files",
						Action: filesListCommand,
					},
					{
						Name:      "delete",
						Usage:     "Delete an uploaded file and its indexed documents",
						ArgsUsage: "FILE",
						Action:    filesDeleteCommand,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the index from every stored file",
				Action: reindexCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".procurelens"
	}
	return filepath.Join(home, ".procurelens")
}

// openAssistant builds the assistant from global flags. Postgres and MinIO
// backends are wired in only when their endpoints are configured; the
// defaults keep everything local.
func openAssistant(c *cli.Context) (*procurelens.Assistant, error) {
	ctx := c.Context

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithLLMModel(c.String("llm-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []procurelens.AssistantOption{
		procurelens.WithAIConfig(aiConfig),
	}

	if dsn := c.String("postgres-dsn"); dsn != "" {
		storeConfig := postgres.DefaultConfig()
		storeConfig.DSN = dsn
		opts = append(opts, procurelens.WithVectorStore(func(ctx context.Context, embedder ai.Embedder) (vectorstore.Store, error) {
			return postgres.Open(ctx, storeConfig, embedder)
		}))
	}

	if endpoint := c.String("minio-endpoint"); endpoint != "" {
		client, err := minio.NewClient(ctx, &minio.Config{
			Endpoint:  endpoint,
			AccessKey: c.String("minio-access-key"),
			SecretKey: c.String("minio-secret-key"),
			Bucket:    c.String("minio-bucket"),
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to MinIO: %w", err)
		}
		opts = append(opts, procurelens.WithFileStore(client))
	}

	return procurelens.NewAssistant(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	var pipelineOpts []ingestion.PipelineOption
	if c.Bool("replace") {
		pipelineOpts = append(pipelineOpts, ingestion.WithReplaceExisting())
	}
	pipelineOpts = append(pipelineOpts, ingestion.WithProgress(func(fraction float64, stage string) {
		fmt.Fprintf(os.Stderr, "[%3.0f%%] %s\n", fraction*100, stage)
	}))

	pipeline, err := assistant.NewIngestionPipeline(c.Context, pipelineOpts...)
	if err != nil {
		return err
	}

	for _, path := range c.Args().Slice() {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}

		result, err := pipeline.Process(c.Context, content, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("%s: %w", result.Message, err)
		}
		fmt.Println(result.Message)
	}

	return nil
}

func analyzeCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	analyzer, err := assistant.NewAnalyzer(c.Context,
		agent.WithTaskProgress(func(completed, total int, roleKey string) {
			fmt.Fprintf(os.Stderr, "%d/%d %s complete\n", completed, total, roleKey)
		}))
	if err != nil {
		return err
	}
	defer analyzer.Release()

	results, err := analyzer.RunAll(c.Context, agent.DefaultTasks())
	if err != nil {
		return err
	}

	for _, role := range agent.Roles() {
		fmt.Printf("## %s\n\n%s\n\n", role.Name, results[role.Key])
	}
	fmt.Println(agent.Summary(results))

	return nil
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	role, ok := agent.RoleByKey(c.String("role"))
	if !ok {
		return fmt.Errorf("unknown role %q: must be one of supplier, spend, risk, contract, po, compliance", c.String("role"))
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	a, err := assistant.NewAgent(c.Context, role)
	if err != nil {
		return err
	}

	answer, err := a.Run(c.Context, query)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func filesListCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	names, err := assistant.Files(c.Context)
	if err != nil {
		return err
	}

	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func filesDeleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one file name is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	name := c.Args().First()
	if err := assistant.RemoveFile(c.Context, name); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", name)
	return nil
}

func reindexCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	return assistant.Reindex(c.Context)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
