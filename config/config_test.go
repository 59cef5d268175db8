package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Hour, cfg.ReminderLead)
	assert.Equal(t, 10*time.Minute, cfg.AvailabilityCacheTTL)
	assert.False(t, cfg.CancelledBlocksSlot)
	assert.Equal(t, 3, cfg.RedisReminderQueueDB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BOOKING_CANCELLED_BLOCKS_SLOT", "true")
	t.Setenv("REMINDER_LEAD", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.True(t, cfg.CancelledBlocksSlot)
	assert.Equal(t, 30*time.Minute, cfg.ReminderLead)
}

func TestClinicLocation(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.ClinicTimezone = ""
	assert.Equal(t, time.UTC, ClinicLocation())

	AppConfig.ClinicTimezone = "Not/AZone"
	assert.Equal(t, time.UTC, ClinicLocation())

	AppConfig.ClinicTimezone = "Africa/Nairobi"
	assert.Equal(t, "Africa/Nairobi", ClinicLocation().String())
}
