package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"time"    // durations for token lifetime and upstream timeout

	"github.com/joho/godotenv" // optional .env file support
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings default to a local MySQL
// server; secrets have no defaults and must be provided.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret  string        // secret used to sign session tokens
	SessionTTL time.Duration // session token lifetime
	BcryptCost int           // bcrypt cost for password hashing

	FrontendOrigin string // the single origin allowed by CORS

	AmadeusKey      string        // upstream client id
	AmadeusSecret   string        // upstream client secret
	AmadeusBaseURL  string        // upstream base URL, without trailing slash
	UpstreamTimeout time.Duration // bound on every outbound upstream call

	AirportsFile string // optional YAML dataset replacing the embedded one
	RabbitMQURL  string // booking event broker; empty disables publishing
}

// Load reads an optional .env file and then builds a Config from the
// environment.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	LoadDotEnv()
	db := LoadDB()
	return Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "5000"),

		DBUser: db.User,
		DBPass: db.Pass,
		DBHost: db.Host,
		DBPort: db.Port,
		DBName: db.Name,

		JWTSecret:  must("JWT_SECRET"),
		SessionTTL: envDur("SESSION_TTL", 24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 12),

		FrontendOrigin: envStr("FRONTEND_ORIGIN", "http://localhost:3000"),

		AmadeusKey:      must("AMADEUS_API_KEY"),
		AmadeusSecret:   must("AMADEUS_API_SECRET"),
		AmadeusBaseURL:  envStr("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT", 15*time.Second),

		AirportsFile: os.Getenv("AIRPORTS_FILE"),
		RabbitMQURL:  RabbitMQURL(),
	}
}

// DB is the database connection settings on their own, for tools that do
// not need the rest of Config.
type DB struct {
	User, Pass, Host, Port, Name string
}

// LoadDB reads the DB_* variables.  It does not load .env; callers that run
// standalone call LoadDotEnv first.
func LoadDB() DB {
	return DB{
		User: envStr("DB_USER", "root"),
		Pass: os.Getenv("DB_PASS"), // empty allowed
		Host: envStr("DB_HOST", "localhost"),
		Port: envStr("DB_PORT", "3306"),
		Name: envStr("DB_NAME", "flight_booking"),
	}
}

// LoadDotEnv loads an optional .env file from the working directory.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

// RabbitMQURL returns the broker URL from RABBITMQ_URL or AMQP_URL.  It is
// shared with the consumer process, which needs nothing else from Config.
func RabbitMQURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
