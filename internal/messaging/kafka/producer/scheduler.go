package producer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Schedule runs the relay on spec (for example "@every 5s") until ctx is
// cancelled, then waits for a running batch to finish.
func Schedule(ctx context.Context, relay *Relay, spec string, logger *zap.Logger) error {
	log := logger.Named("kafka.producer.scheduler")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if _, err := relay.RunOnce(runCtx); err != nil && ctx.Err() == nil {
			log.Error("process outbox events failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	log.Info("outbox worker started", zap.String("schedule", spec))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("outbox worker stopped")
	return nil
}
