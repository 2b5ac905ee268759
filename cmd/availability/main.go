package main

import (
	"wedmarket/internal/availability/consumer"
	"wedmarket/internal/availability/handler"
	"wedmarket/internal/availability/repository"
	"wedmarket/internal/availability/service"
	"wedmarket/internal/availability/validator"
	"wedmarket/pkg/app"
	"wedmarket/pkg/config"
	"wedmarket/pkg/kafka"
	kafka_config "wedmarket/pkg/kafka/config"
	kafka_middleware "wedmarket/pkg/kafka/middleware"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	cfg.Log.Info("Starting Availability service")
	serverApp := app.NewApplication(cfg)
	metrics := kafka_middleware.NewMetrics()

	repo := repository.NewMongoAvailabilityRepository(cfg)
	availabilityService := initServices(cfg, kafkaCfg, repo, metrics, serverApp)
	initConsumers(cfg, kafkaCfg, availabilityService, metrics, serverApp)

	serverApp.SetApp(
		handler.NewHealthHandler(repo, metrics, cfg.Log),
		handler.NewAvailabilityHandler(availabilityService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(
	cfg *config.Config,
	kafkaCfg *kafka_config.Config,
	repo repository.AvailabilityRepository,
	metrics *kafka_middleware.Metrics,
	serverApp *app.Application,
) service.AvailabilityService {
	var publisher service.EventPublisher
	if kafkaCfg.Enabled() {
		producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.AvailabilityTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
		serverApp.AddCloser("kafka-producer", producer)
		publisher = producer
	} else {
		cfg.Log.Info("Kafka disabled, availability events will not be published")
	}

	availabilityValidator := validator.NewAvailabilityValidator(cfg.Log)
	availabilityService := service.NewAvailabilityService(
		repo,
		availabilityValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}

func initConsumers(
	cfg *config.Config,
	kafkaCfg *kafka_config.Config,
	availabilityService service.AvailabilityService,
	metrics *kafka_middleware.Metrics,
	serverApp *app.Application,
) {
	if !kafkaCfg.Enabled() {
		return
	}

	bookingHandler := consumer.NewBookingEventHandler(availabilityService, cfg.Log)
	bookingConsumer, err := kafka.NewConsumer(kafkaCfg, kafkaCfg.BookingTopic, bookingHandler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	bookingConsumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	bookingConsumer.Use(metrics.ConsumerMiddleware())
	serverApp.AddWorker("booking-events", bookingConsumer)
}
