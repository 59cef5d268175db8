package cron

import (
	"context"

	"clinixsphere/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HealthCheckSpec runs the dependency check every minute.
const HealthCheckSpec = "@every 1m"

// StartHealthMonitor checks once immediately, then on spec. Stop the returned
// scheduler on shutdown.
func StartHealthMonitor(checker *utils.HealthChecker, spec string) (*robfig.Cron, error) {
	logger := utils.GetLogger()
	run := func() {
		status := checker.Check(context.Background())
		if !status.Mongo {
			logger.Warn("MongoDB health check failed")
		}
		for i, ok := range status.Redis {
			if !ok {
				logger.Warn("Redis health check failed", zap.Int("client", i))
			}
		}
	}

	c := robfig.New()
	if _, err := c.AddFunc(spec, run); err != nil {
		return nil, err
	}
	run()
	c.Start()
	return c, nil
}
