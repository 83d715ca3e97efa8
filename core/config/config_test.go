package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "POSTGRES_PASSWORD", "POSTGRES_SCHEMA", "PORT", "LOG_LEVEL", "KAFKA_BROKERS", "KAFKA_TOPIC")
	t.Setenv("POSTGRES", "host=localhost")

	service, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost", service.Postgres)
	assert.Equal(t, "public", service.PostgresSchema)
	assert.Equal(t, 5000, service.Port)
	assert.Equal(t, ":5000", service.Addr())
	assert.Equal(t, "pagemap-notifications", service.KafkaTopic)
	assert.Nil(t, service.Brokers())

	level, err := service.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES", "postgres://db:5432/app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_SCHEMA", "automation")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "changes")

	service, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", service.PostgresPassword)
	assert.Equal(t, "automation", service.PostgresSchema)
	assert.Equal(t, ":8080", service.Addr())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, service.Brokers())
	assert.Equal(t, "changes", service.KafkaTopic)

	level, err := service.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)
}

func TestLoadRequiresPostgres(t *testing.T) {
	unsetenv(t, "POSTGRES")

	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidLevel(t *testing.T) {
	service := &Service{LogLevel: "loud"}
	_, err := service.Level()
	assert.Error(t, err)
}

// unsetenv removes variables for the duration of the test
func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
