package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/scoring"
	"bitbucket.org/mmdatafocus/coopcredit_backend/workflow"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// Nightly batch: recompute the score of every ACTIVE member. A redis lock
// keeps overlapping runs (cron double-fire, manual run during cron) from
// hammering the database at the same time; scores themselves are append-only
// so a duplicate run is wasteful, not harmful.
func main() {
	var (
		lockTTL = flag.Duration("lock-ttl", 30*time.Minute, "redis lock TTL for the whole batch")
		limit   = flag.Int("limit", 0, "score at most N members (0 = all)")
	)
	flag.Parse()

	logger := config.GetLogger()

	cfg, err := scoring.LoadConfig()
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "scoring config"}).Panic(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	locker := config.GetRedisLock()
	if locker == nil {
		logger.WithFields(logrus.Fields{"field": "rescore-all"}).Panic("redis lock client not ready")
	}
	lock, err := locker.Obtain(ctx, "lock:rescore-all", *lockTTL, nil)
	if err == redislock.ErrNotObtained {
		logger.WithFields(logrus.Fields{"field": "rescore-all"}).Warn("another rescore run holds the lock; exiting")
		return
	} else if err != nil {
		logger.WithFields(logrus.Fields{"field": "rescore-all"}).Panic(err.Error())
	}
	defer func() {
		// Release on the redis client's own context: the signal context may
		// already be cancelled when the deferred release runs.
		if releaseErr := lock.Release(config.GetRedisContext()); releaseErr != nil {
			logger.WithFields(logrus.Fields{"field": "rescore-all"}).Warn("failed to release redis lock: " + releaseErr.Error())
		}
	}()

	ids, err := models.GetActiveMemberIds(ctx)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "rescore-all"}).Panic(err.Error())
	}
	if *limit > 0 && len(ids) > *limit {
		ids = ids[:*limit]
	}

	engine := scoring.NewEngine(models.NewMemberDataService(), cfg)

	start := time.Now()
	done, err := workflow.RescoreMembers(ctx, engine, ids)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"field":   "rescore-all",
			"scored":  done,
			"total":   len(ids),
			"elapsed": time.Since(start).String(),
		}).Error("batch stopped early: " + err.Error())
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"field":   "rescore-all",
		"scored":  done,
		"elapsed": time.Since(start).String(),
	}).Info("batch complete")
	fmt.Printf("rescored %d members in %s\n", done, time.Since(start))
}
