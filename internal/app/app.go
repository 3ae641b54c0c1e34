package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ReferralApi/internal/middleware"
	"ReferralApi/internal/service"
	"ReferralApi/pkg/logger"
	"ReferralApi/pkg/redis"
)

const apiPrefix = "api/"

func Start() {
	gin.DisableConsoleColor()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.BlockBadActorsMiddleware())

	// Redis only backs the live rewards feed; the service runs without it.
	var redisService *redis.RedisService
	if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		redisService = redis.NewRedisService(addr, os.Getenv("REDIS_PASSWORD"))
	}

	rewardService := service.NewRewardService(service.DefaultRewardConfig(), redisService)

	// router
	{
		// users
		router.POST(apiPrefix+"users/register", service.Register)
		router.GET(apiPrefix+"users/by-username/:username", service.GetUserByUsername)
		router.GET(apiPrefix+"users/:userID", service.GetUser)
		router.GET(apiPrefix+"users/:userID/referrals", service.GetUserReferrals)
		router.GET(apiPrefix+"users/:userID/rewards", service.GetUserRewards)

		// deposits
		router.POST(apiPrefix+"payments/deposit", rewardService.AddDeposit)
		router.GET(apiPrefix+"users/:userID/deposits", service.GetUserDeposits)
	}

	if redisService != nil {
		rewardsFeedService := service.NewRewardsFeedService(redisService)
		router.GET(apiPrefix+"rewards/recent", rewardsFeedService.GetRecentRewards)
		router.GET(apiPrefix+"ws/rewards/live", rewardsFeedService.LiveRewardsWebsocketHandler)
	}

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router.Handler(),
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server Shutdown: %v", err)
	}

	logger.Info("Server exiting")
}
