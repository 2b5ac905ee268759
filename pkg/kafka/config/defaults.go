package kafka_config

import "time"

const (
	// Empty brokers disable event publishing and consumption.
	DefaultKafkaBrokers = ""

	DefaultAvailabilityTopic = "availability.updated"
	DefaultBookingTopic      = "booking.events"
	DefaultDLQTopic          = "dlq.availability"
	DefaultConsumerGroup     = "availability-service"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset    = -1
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
	DefaultConsumerSessionTimeout = 10 * time.Second
	DefaultConsumerMaxRetries     = 3
	DefaultConsumerRetryBackoff   = 200 * time.Millisecond
)
