package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dpersh/robot/api"
	"github.com/dpersh/robot/api/exploration"
	api_i "github.com/dpersh/robot/api/i"
	"github.com/dpersh/robot/api/identity"
	"github.com/dpersh/robot/config"
	dmn "github.com/dpersh/robot/domain"
	operator "github.com/dpersh/robot/identity"
	"github.com/dpersh/robot/infrastruture/repo"
	"github.com/dpersh/robot/infrastruture/sortedstorage"
	"github.com/dpersh/robot/infrastruture/token"
	"github.com/dpersh/robot/logger"
	"github.com/dpersh/robot/service"
	"github.com/dpersh/robot/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	reportsCollection = "reports"
	connectTimeout    = 10 * time.Second
	runLockTries      = 8
)

// Global variables for dependencies
var (
	mongoClient           *mongo.Client
	redisClient           *redis.Client
	reportRepo            i.ReportRepo
	leaderboard           i.Leaderboard
	runLocker             i.RunLocker
	explorationSvc        *service.ExplorationService
	jwtTokenizer          i.Tokenizer
	authService           i.Authenticator
	authController        api_i.Controller
	explorationController api_i.Controller
	router                *api.Router
	appLogger             *logrus.Entry
)

func newLogger(component string) *logrus.Entry {
	return logger.New(component, logger.Options{
		Level:  config.Envs.LogLevel,
		Format: config.Envs.LogFormat,
		Out:    os.Stdout,
	})
}

func initMongo(ctx context.Context) {
	if config.Envs.DBURI == "" {
		appLogger.Warn("DB_URI not set, reports will not be stored")
		return
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.DBURI))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.WithError(err).Fatal("MongoDB ping failed")
	}

	reportRepo = repo.NewReportRepo(mongoClient, config.Envs.DBName, reportsCollection)
	appLogger.Info("Report repository initialized")
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warn("REDIS_ADDR not set, leaderboard and run locks are disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.WithError(err).Fatal("Redis ping failed")
	}

	leaderboard = sortedstorage.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardTTL)
	runLocker = sortedstorage.NewRedisLocker(redisClient, 0, runLockTries)
	appLogger.Info("Leaderboard and run locker initialized")
}

func initExplorationService() {
	var err error
	explorationSvc, err = service.NewExplorationService(&service.Config{
		Reports:        reportRepo,
		Leaderboard:    leaderboard,
		Locker:         runLocker,
		Logger:         newLogger("EXPLORER"),
		DefaultWidth:   config.Envs.WorldWidth,
		DefaultHeight:  config.Envs.WorldHeight,
		DefaultDensity: config.Envs.ObstacleDensity,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Creating exploration service")
	}
	appLogger.Info("Exploration service initialized")
}

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	if err != nil {
		appLogger.WithError(err).Fatal("Creating JWT tokenizer (set JWT_SECRET)")
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	op, err := operator.NewOperator(config.Envs.OperatorKeyHash)
	if err != nil {
		appLogger.WithError(err).Fatal("Loading operator key hash (set OPERATOR_KEY_HASH, see -hash-key)")
	}

	authService, err = service.NewAuthService(op, jwtTokenizer, 0)
	if err != nil {
		appLogger.WithError(err).Fatal("Creating auth service")
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	explorationController = exploration.NewController(explorationSvc)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, explorationController},
		AuthorizationMiddleware: identity.Authoriz(t, dmn.ScopeExplore),
	})
	appLogger.Info("Router initialized")
}

func serve() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initExplorationService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.WithError(err).Error("Starting server")
		os.Exit(1)
	}
}

// exploreOnce runs a single exploration and prints the world before and after.
func exploreOnce(params i.RunParams) {
	initExplorationService()

	report, err := explorationSvc.Run(context.Background(), params)
	if report != nil {
		fmt.Print(report.Layout)
		fmt.Println("-----------------------------------------")
		fmt.Print(report.Map)
	}
	if err != nil {
		appLogger.WithError(err).Fatal("Exploration failed")
	}

	appLogger.WithFields(logrus.Fields{
		"run":       report.ID,
		"seed":      report.Seed,
		"visited":   report.Visited,
		"reachable": report.Reachable,
		"moves":     report.Moves,
		"scans":     report.Scans,
		"max_depth": report.MaxDepth,
		"home":      report.ReturnedHome,
	}).Info("Exploration complete")
}

func main() {
	var (
		serveMode bool
		hashKey   string
		width     int
		height    int
		density   float64
		seed      int64
	)
	flag.BoolVar(&serveMode, "serve", false, "Serve the REST API instead of running one exploration")
	flag.StringVar(&hashKey, "hash-key", "", "Print the bcrypt hash of an operator key and exit")
	flag.IntVar(&width, "width", config.Envs.WorldWidth, "World interior width")
	flag.IntVar(&height, "height", config.Envs.WorldHeight, "World interior height")
	flag.Float64Var(&density, "density", float64(config.Envs.ObstacleDensity), "Obstacle density (0..1)")
	flag.Int64Var(&seed, "seed", config.Envs.WorldSeed, "World seed (0 for random)")
	flag.Parse()

	appLogger = newLogger("APP")

	if hashKey != "" {
		hash, err := operator.HashKey(hashKey)
		if err != nil {
			appLogger.WithError(err).Fatal("Hashing operator key")
		}
		fmt.Println(hash)
		return
	}

	if serveMode {
		serve()
		return
	}

	d := float32(density)
	exploreOnce(i.RunParams{Width: width, Height: height, Density: &d, Seed: seed})
}
