package bootstrap

import (
	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/controller"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/internal/service"

	pktNats "ai-docstruct-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	pipeline := NewPipeline(cfg, sysLogger)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror is optional
	var (
		natsPub *pktNats.Publisher
		mirror  service.EventMirror
	)
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(bootstrapModule, "Failed to connect to NATS Publisher", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			natsPub = pub
			mirror = pub
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.EventsTopic, mirror, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, sysLogger)
	documentService := service.NewDocumentService(
		pipeline.Extractor,
		pipeline.Invoker,
		pipeline.Exporter,
		publisherService,
		sysLogger,
		cfg.App.MaxParallelFiles,
	)

	// 4. Controllers
	documentController := controller.NewDocumentController(documentService, cfg.App.UploadDir, sysLogger)

	return &Container{
		DocumentController: documentController,
		ConsumerService:    consumerService,
		Logger:             sysLogger,
		pubSub:             pubSub,
		natsPub:            natsPub,
	}
}

// Close releases the event bus and the NATS connection.
func (c *Container) Close() {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
}
