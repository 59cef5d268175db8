package cron

import (
	"testing"

	"clinixsphere/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHealthMonitor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	checker := &utils.HealthChecker{RedisClients: []*redis.Client{client}}
	c, err := StartHealthMonitor(checker, HealthCheckSpec)
	require.NoError(t, err)
	defer c.Stop()

	status := utils.GetHealthStatus()
	assert.Equal(t, []bool{true}, status.Redis)
	assert.False(t, status.Mongo)
	assert.Len(t, c.Entries(), 1)
}

func TestStartHealthMonitor_BadSpec(t *testing.T) {
	_, err := StartHealthMonitor(&utils.HealthChecker{}, "not a spec")
	assert.Error(t, err)
}
