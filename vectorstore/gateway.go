package vectorstore

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Gateway owns the connection to the vector store and hands out the
// process-wide Index. The connection is opened lazily on first request and
// cached for the remainder of the process, so the warm-up cost (network
// connection, collection lookup) is paid once, not once per agent.
//
// A failed open is cached too: the gateway does not retry on its own, and
// every subsequent call observes the same initialization error. Callers
// decide whether to abort or degrade.
//
// Unlike a package-level singleton, a Gateway is an explicit dependency:
// tests construct their own gateway over a fake store with no global state
// leaking between cases.
type Gateway struct {
	open   OpenFunc
	logger *slog.Logger

	once  sync.Once
	index *Index
	err   error
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithGatewayLogger sets a custom logger.
// Default is slog.Default().
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// NewGateway creates a gateway around the given open function.
// The open function is not invoked until the first Index call.
func NewGateway(open OpenFunc, opts ...GatewayOption) (*Gateway, error) {
	if open == nil {
		return nil, ErrOpenFuncRequired
	}

	g := &Gateway{
		open:   open,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Index returns the cached vector index, opening the store connection on the
// first call. Every caller receives the same *Index instance, so all agents
// share one retrieval engine.
//
// The first call may block for a non-trivial time; interactive callers should
// surface a spinner or progress indicator around it.
func (g *Gateway) Index(ctx context.Context) (*Index, error) {
	g.once.Do(func() {
		g.logger.Info("opening vector store connection")
		start := time.Now()

		store, err := g.open(ctx)
		if err != nil {
			g.logger.Error("failed to initialize vector store", "err", err)
			g.err = err
			return
		}

		g.index = newIndex(store, g.logger)
		g.logger.Info("vector index ready", "duration", time.Since(start))
	})
	return g.index, g.err
}

// Close releases the underlying store if it was ever opened.
func (g *Gateway) Close() error {
	if g.index == nil {
		return nil
	}
	return g.index.store.Close()
}
