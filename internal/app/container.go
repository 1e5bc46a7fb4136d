package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/Krontiva/rider-web-app/internal/cli"
	"github.com/Krontiva/rider-web-app/internal/config"
	"github.com/Krontiva/rider-web-app/internal/credentials"
	"github.com/Krontiva/rider-web-app/internal/gateway/delika"
	"github.com/Krontiva/rider-web-app/internal/logx"
	"github.com/Krontiva/rider-web-app/internal/metrics"
	"github.com/Krontiva/rider-web-app/internal/service/auth"
	"github.com/Krontiva/rider-web-app/internal/service/orders"
	"github.com/Krontiva/rider-web-app/internal/service/pricing"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	configLoad func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		configLoad: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithConfigLoad sets the configuration loader
func (b *ContainerBuilder) WithConfigLoad(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.configLoad = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.configLoad); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerCLI(container); err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, configLoad func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		configLoad,
		NewLogger,
		func(cfg *config.Config) credentials.Store {
			return credentials.NewFileStore(cfg.TokenPath)
		},
	)
}

// gatewayCounters bundles the backend counter vecs so dig can tell the two
// apart.
type gatewayCounters struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		func() gatewayCounters {
			requests := metrics.NewBackendRequestsTotal()
			failures := metrics.NewBackendFailuresTotal()
			registry := prometheus.NewRegistry()
			registry.MustRegister(requests, failures)
			return gatewayCounters{registry: registry, requests: requests, failures: failures}
		},
		func(c gatewayCounters) *prometheus.Registry { return c.registry },
		func(cfg *config.Config, creds credentials.Store, logger logx.Logger) *delika.Client {
			return delika.NewClient(cfg.API, creds, logger)
		},
		func(client *delika.Client, c gatewayCounters) *delika.Instrumented {
			return delika.NewInstrumented(client, c.requests, c.failures)
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(gw *delika.Instrumented, creds credentials.Store, logger logx.Logger) *auth.Service {
			return auth.NewService(gw, creds, logger)
		},
		func(gw *delika.Instrumented, logger logx.Logger) *orders.Service {
			return orders.NewService(gw, logger, nil)
		},
		func(gw *delika.Instrumented, logger logx.Logger) *pricing.Session {
			return pricing.NewSession(gw, logger)
		},
	)
}

func registerCLI(container *dig.Container) error {
	return provideAll(container,
		func() io.Reader { return os.Stdin },
		func() io.Writer { return os.Stdout },
		func(
			authSvc *auth.Service,
			orderSvc *orders.Service,
			session *pricing.Session,
			logger logx.Logger,
			in io.Reader,
			out io.Writer,
		) *cli.Runner {
			return cli.NewRunner(authSvc, orderSvc, session, logger, in, out)
		},
	)
}
