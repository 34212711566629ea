package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/conf"
	"xinyuan_tech/booking-service/internal/constants"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/go-redsync/redsync/v4"
	"github.com/robfig/cron/v3"
	_ "go.uber.org/automaxprocs"
)

var (
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

// CronApp Cron 应用结构
type CronApp struct {
	OrderUsecase  *biz.OrderUsecase
	MemberUsecase *biz.MemberUsecase
	Redsync       *redsync.Redsync
}

// newLogger 创建 logger
func newLogger() klog.Logger {
	return klog.With(klog.NewStdLogger(os.Stdout),
		"ts", klog.DefaultTimestamp,
		"caller", klog.DefaultCaller,
		"service.name", "booking-cron",
	)
}

// withLock 在分布式锁内执行任务,多实例部署时同一任务只有一个实例真正执行
func withLock(rs *redsync.Redsync, key string, fn func()) {
	mutex := rs.NewMutex(key,
		redsync.WithExpiry(constants.CronLockExpiration),
		redsync.WithTries(constants.CronLockRetries),
	)
	if err := mutex.Lock(); err != nil {
		log.Printf("[CRON] Skipping %s: lock held by another instance", key)
		return
	}
	defer func() {
		if _, err := mutex.Unlock(); err != nil {
			log.Printf("[CRON] Failed to release lock %s: %v", key, err)
		}
	}()

	fn()
}

func main() {
	flag.Parse()

	// 初始化配置
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	// 初始化应用
	app, cleanup, err := wireApp(&bc)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// 创建定时任务调度器（支持秒级调度）
	cronScheduler := cron.New(cron.WithSeconds())

	// 1. 订单过期清理 - 每 5 分钟执行
	// 读取路径的懒惰过期已兜底,这里把没人再查的待支付订单也扫掉
	_, err = cronScheduler.AddFunc("0 */5 * * * *", func() {
		withLock(app.Redsync, constants.OrderExpireLockKey, func() {
			log.Println("[CRON] Starting stale order expiration...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			count, err := app.OrderUsecase.ExpireStaleOrders(ctx)
			if err != nil {
				log.Printf("[CRON] Error expiring stale orders: %v", err)
			} else {
				log.Printf("[CRON] Expired %d stale orders", count)
			}
			log.Println("[CRON] Finished stale order expiration")
		})
	})
	if err != nil {
		log.Printf("Failed to add order expiration job: %v", err)
	}

	// 2. 会员过期检查 - 每天凌晨 2 点执行
	_, err = cronScheduler.AddFunc("0 0 2 * * *", func() {
		withLock(app.Redsync, constants.MemberExpireLockKey, func() {
			log.Println("[CRON] Starting member expiration check...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			count, err := app.MemberUsecase.ExpireMembers(ctx)
			if err != nil {
				log.Printf("[CRON] Error expiring members: %v", err)
			} else {
				log.Printf("[CRON] Expired %d member records", count)
			}
			log.Println("[CRON] Finished member expiration check")
		})
	})
	if err != nil {
		log.Printf("Failed to add member expiration job: %v", err)
	}

	// 启动定时任务
	cronScheduler.Start()
	log.Println("========================================")
	log.Println("Cron jobs started successfully")
	log.Println("Scheduled jobs:")
	log.Println("  - Order expiration:  Every 5 minutes")
	log.Println("  - Member expiration: Every day at 02:00")
	log.Println("========================================")

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	// 停止定时任务
	ctx := cronScheduler.Stop()
	select {
	case <-ctx.Done():
		log.Println("Cron jobs stopped gracefully")
	case <-time.After(5 * time.Second):
		log.Println("Cron jobs forced to stop after timeout")
	}
}
