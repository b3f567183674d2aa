package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-docstruct-be/internal/bootstrap"
	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/server"
	"ai-docstruct-be/internal/tracer"
)

func main() {
	// 0. Load Configuration (.env must be applied before the tracer reads OTEL_*)
	cfg := config.Load()

	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Close()
	defer container.Logger.Sync()

	// 3. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
