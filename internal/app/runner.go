package app

import (
	"context"
	"errors"
	"log"

	"go.uber.org/dig"

	"github.com/Krontiva/rider-web-app/internal/cli"
	"github.com/Krontiva/rider-web-app/internal/logx"
)

// MustRun drives the terminal session using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(ctx context.Context, runner *cli.Runner, logger logx.Logger) error {
		defer func() {
			if err := logger.Sync(); err != nil {
				log.Printf("logger sync error: %v", err)
			}
		}()
		return runner.Run(ctx)
	})
}
