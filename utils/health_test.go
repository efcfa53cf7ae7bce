package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	up, upMock := redismock.NewClientMock()
	down, downMock := redismock.NewClientMock()
	upMock.ExpectPing().SetVal("PONG")
	downMock.ExpectPing().SetErr(errors.New("dial tcp: connection refused"))

	status := CheckHealth(context.Background(), []*redis.Client{up, down}, nil)

	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.Nil(t, status.Mongo)
	assert.False(t, status.Healthy())
	assert.Equal(t, status, GetHealthStatus())
	require.NoError(t, upMock.ExpectationsWereMet())
	require.NoError(t, downMock.ExpectationsWereMet())
}

func TestHealthStatusHealthy(t *testing.T) {
	ok, bad := true, false
	assert.True(t, HealthStatus{Redis: []bool{true}}.Healthy())
	assert.True(t, HealthStatus{Mongo: &ok}.Healthy())
	assert.False(t, HealthStatus{Mongo: &bad}.Healthy())
}
