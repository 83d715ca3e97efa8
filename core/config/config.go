// Package config holds the environment configuration of the pagemap service.
package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres dbname=postgres sslmode=disable"
// and POSTGRES_PASSWORD="docker"
type Service struct {
	Postgres         string `env:"POSTGRES,required" description:"the connection string for the Postgres DB without password"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" description:"password to the Postgres DB"`
	PostgresSchema   string `env:"POSTGRES_SCHEMA,default=public" description:"schema holding the projects, pages and elements tables"`
	Port             int    `env:"PORT,default=5000" description:"port the HTTP server listens on"`
	LogLevel         string `env:"LOG_LEVEL,default=info" description:"log level: trace, debug, info, warn, error"`
	KafkaBrokers     string `env:"KAFKA_BROKERS" description:"comma separated Kafka brokers for change notifications, empty disables them"`
	KafkaTopic       string `env:"KAFKA_TOPIC,default=pagemap-notifications" description:"Kafka topic for change notifications"`
}

// Load decodes the service configuration from the environment
func Load() (*Service, error) {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		return nil, fmt.Errorf("cannot decode environment: %w", err)
	}
	return service, nil
}

// Addr returns the listen address
func (s *Service) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Level returns the parsed log level
func (s *Service) Level() (logrus.Level, error) {
	return logrus.ParseLevel(s.LogLevel)
}

// Brokers returns the configured Kafka brokers, nil if notifications are disabled
func (s *Service) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(s.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
