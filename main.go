package main

import (
	"time"

	"go.uber.org/zap"

	"arenaserver/arena"     // matchmaking, consensus, rating and anti-cheat core
	"arenaserver/database"  // PostgreSQL and Redis initialization
	"arenaserver/handlers"  // HTTP handlers for the arena API
	"arenaserver/live"      // websocket result feed
	"arenaserver/llm"       // response generation and evaluation capabilities
	"arenaserver/utils"     // logger initialization and cron jobs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// initialize PostgreSQL and Redis concurrently
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("failed to load config file", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("failed to initialize PostgreSQL", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			logger.Fatal("failed to migrate schema", zap.Error(err))
		}
		if err := database.SeedPrompts(db, logger); err != nil {
			logger.Fatal("failed to seed prompts", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	<-done
	<-done

	model, err := llm.NewClient(logger)
	if err != nil {
		logger.Fatal("failed to initialize model client", zap.Error(err))
	}
	var generator arena.ResponseGenerator = model
	var evaluator arena.Evaluator = model

	go utils.CronJobs(db, logger)

	hub := live.NewHub(logger)

	router := gin.Default()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/arena/compete", func(c *gin.Context) {
		handlers.CompeteHandler(c, db, logger)
	})
	router.POST("/arena/matches/:matchID/response", func(c *gin.Context) {
		handlers.SubmitResponseHandler(c, db, logger)
	})
	router.GET("/judges/pending", func(c *gin.Context) {
		handlers.PendingJudgmentHandler(c, db, rdb, logger)
	})
	router.POST("/judges/vote", func(c *gin.Context) {
		handlers.SubmitVoteHandler(c, db, rdb, logger, evaluator, hub)
	})
	router.POST("/arena/sweep", func(c *gin.Context) {
		handlers.SweepHandler(c, db, rdb, logger, generator, evaluator)
	})
	router.GET("/arena/health", func(c *gin.Context) {
		handlers.HealthHandler(c, db, rdb, logger)
	})
	router.GET("/ws/results", func(c *gin.Context) {
		hub.HandleConnection(c.Writer, c.Request)
	})

	router.Run()
}
