package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "mongo", AppConfig.StoreDriver)
	assert.Equal(t, "@every 1m", AppConfig.SweepSchedule)
	assert.Equal(t, "inline", AppConfig.NotifyDispatch)
	assert.Equal(t, 15, AppConfig.DefaultServiceMinutes)
	assert.Equal(t, []string{"ws"}, AppConfig.PublisherNames())
	assert.False(t, IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PUBLISHERS", " WS, redis ,,pubnub")
	t.Setenv("DEFAULT_SERVICE_MINUTES", "20")

	LoadConfig()

	assert.True(t, IsProduction())
	assert.Equal(t, "memory", AppConfig.StoreDriver)
	assert.Equal(t, 20, AppConfig.DefaultServiceMinutes)
	require.Equal(t, []string{"ws", "redis", "pubnub"}, AppConfig.PublisherNames())
}

func TestMailConfigured(t *testing.T) {
	assert.False(t, Config{MailUser: "bot@example.com"}.MailConfigured())
	assert.True(t, Config{MailUser: "bot@example.com", MailPass: "secret"}.MailConfigured())
}
