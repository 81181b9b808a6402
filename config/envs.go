package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	WorldWidth      int     // Interior width of generated worlds
	WorldHeight     int     // Interior height of generated worlds
	ObstacleDensity float32 // Probability that an interior cell is blocked
	WorldSeed       int64   // Seed for world generation (0 picks a time based seed)
	LogLevel        string  // logrus level name (debug, info, warn, ...)
	LogFormat       string  // "text" or "json"
	HostIP          string  // Host IP for the server
	RESTPort        int     // Port for the REST API
	GinMode         string  // Mode for the Gin framework (e.g., release, debug, test)
	DBURI           string  // MongoDB connection URI; reports are not stored when empty
	DBName          string  // Name of the database
	RedisAddr       string  // Redis address; leaderboard and run locks are disabled when empty
	RedisPassword   string  // Password for Redis
	RedisDB         int     // Redis logical database
	LeaderboardTTL  int     // Leaderboard key expiry in seconds
	JWTSecret       string  // Secret key for JWT signing
	JWTIssuer       string  // Issuer claim for JWTs
	OperatorKeyHash string  // bcrypt hash of the operator key exchanged for tokens
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		WorldWidth:      getEnvAsIntWithDefault("WORLD_WIDTH", 25),
		WorldHeight:     getEnvAsIntWithDefault("WORLD_HEIGHT", 25),
		ObstacleDensity: getEnvAsFloatWithDefault("OBSTACLE_DENSITY", 0.2),
		WorldSeed:       int64(getEnvAsIntWithDefault("WORLD_SEED", 0)),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvWithDefault("LOG_FORMAT", "text"),
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		DBURI:           getEnvWithDefault("DB_URI", ""),
		DBName:          getEnvWithDefault("DB_NAME", "robot"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		LeaderboardTTL:  getEnvAsIntWithDefault("LEADERBOARD_TTL", 24*60*60),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "robot"),
		OperatorKeyHash: getEnvWithDefault("OPERATOR_KEY_HASH", ""),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue
// when unset. A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault is getEnvAsIntWithDefault for 32-bit floats.
func getEnvAsFloatWithDefault(key string, defaultValue float32) float32 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return float32(value)
}
