package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/news-agent/internal/core"
	"github.com/mikey/news-agent/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags, err := di.ParseFlags()
	if err != nil {
		fmt.Printf("Failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	// Build the dependency injection container
	container, err := di.BuildContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	service *core.NewsAgentService,
	llmClient core.LLMClient,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Close any resources that need closing
	defer func() {
		if closer, ok := llmClient.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close LLM client", zap.Error(err))
			}
		}
	}()

	return service.Run(ctx)
}
