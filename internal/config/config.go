package config

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// Route modes. Read-only is the default so a public deployment cannot be written to.
type Mode struct {
	AllowWrite bool
	Debug      bool
}

func (m Mode) String() string {
	s := "read-only"
	if m.AllowWrite {
		s = "read-write"
	}
	if m.Debug {
		s += "+debug"
	}
	return s
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Prefix          string
}

type Config struct {
	Port           string
	Environment    string
	DataRoot       string
	DBDriver       string
	DBURL          string
	StorageBackend string
	Mode           Mode
	LogLevel       string
	LogDev         bool
	CorsConfig     cors.Options
	R2             R2Config
}

// PicturesDir is where the local picture store keeps <llama_id>.png files.
func (c Config) PicturesDir() string {
	return filepath.Join(c.DataRoot, "llama_store_data", "pictures")
}

// DatabaseDSN returns DB_URL, or the SQLite file under the data root when unset.
func (c Config) DatabaseDSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return filepath.Join(c.DataRoot, "sql_app.db")
}

// Load reads the optional env file and then the process environment.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		DataRoot:       getEnv("DATA_ROOT", ".appdata"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBURL:          getEnv("DB_URL", ""),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		Mode: Mode{
			AllowWrite: getBool("ALLOW_WRITE", false),
			Debug:      getBool("DEBUG", false),
		},
		LogLevel:   getEnv("LOG_LEVEL", ""),
		LogDev:     getBool("LOG_DEV", false),
		CorsConfig: CorsConfig(getEnv("CORS_ORIGINS", "http://localhost:8080")),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Prefix:          getEnv("R2_PREFIX", "pictures/"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

// CorsConfig allows the comma separated origins list.
func CorsConfig(origins string) cors.Options {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	return cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}
}
