package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openmix/mixqueue/internal/platform/logging"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	InternalServiceToken    string

	TeamSize               int
	StartingRating         int
	CandidateMapCount      int
	FallbackCandidateCount int
	LobbyMaxAge            time.Duration
	LobbySweepInterval     time.Duration

	ResultFeedEnabled             bool
	ResultFeedURL                 string
	ResultFeedToken               string
	ResultFeedTimeout             time.Duration
	ResultFeedCircuitEnabled      bool
	ResultFeedCircuitFailureCount int
	ResultFeedCircuitOpenTimeout  time.Duration
	ResultFeedCircuitHalfOpenReq  int

	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageDriverMemory)))
	switch storageDriver {
	case StorageDriverMemory, StorageDriverPostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s",
			storageDriver, StorageDriverMemory, StorageDriverPostgres)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StorageDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	teamSize, err := getEnvAsInt("MATCH_TEAM_SIZE", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_TEAM_SIZE: %w", err)
	}
	if teamSize < 1 {
		return Config{}, fmt.Errorf("MATCH_TEAM_SIZE must be >= 1")
	}
	startingRating, err := getEnvAsInt("MATCH_STARTING_RATING", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_STARTING_RATING: %w", err)
	}
	if startingRating < 1 {
		return Config{}, fmt.Errorf("MATCH_STARTING_RATING must be >= 1")
	}
	candidateMapCount, err := getEnvAsInt("MATCH_CANDIDATE_MAP_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_CANDIDATE_MAP_COUNT: %w", err)
	}
	if candidateMapCount < 1 {
		return Config{}, fmt.Errorf("MATCH_CANDIDATE_MAP_COUNT must be >= 1")
	}
	fallbackCandidateCount, err := getEnvAsInt("MATCH_FALLBACK_CANDIDATE_COUNT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_FALLBACK_CANDIDATE_COUNT: %w", err)
	}
	if fallbackCandidateCount < 1 {
		return Config{}, fmt.Errorf("MATCH_FALLBACK_CANDIDATE_COUNT must be >= 1")
	}

	lobbyMaxAge, err := time.ParseDuration(getEnv("LOBBY_MAX_AGE", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOBBY_MAX_AGE: %w", err)
	}
	if lobbyMaxAge <= 0 {
		return Config{}, fmt.Errorf("LOBBY_MAX_AGE must be > 0")
	}
	lobbySweepInterval, err := time.ParseDuration(getEnv("LOBBY_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOBBY_SWEEP_INTERVAL: %w", err)
	}
	if lobbySweepInterval <= 0 {
		return Config{}, fmt.Errorf("LOBBY_SWEEP_INTERVAL must be > 0")
	}

	resultFeedEnabled, err := strconv.ParseBool(getEnv("RESULT_FEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_ENABLED: %w", err)
	}
	resultFeedURL := strings.TrimSpace(getEnv("RESULT_FEED_URL", ""))
	if resultFeedEnabled && resultFeedURL == "" {
		return Config{}, fmt.Errorf("RESULT_FEED_URL is required when RESULT_FEED_ENABLED=true")
	}
	resultFeedTimeout, err := time.ParseDuration(getEnv("RESULT_FEED_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_TIMEOUT: %w", err)
	}
	if resultFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("RESULT_FEED_TIMEOUT must be > 0")
	}
	resultFeedCircuitEnabled, err := strconv.ParseBool(getEnv("RESULT_FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_CIRCUIT_ENABLED: %w", err)
	}
	resultFeedCircuitFailureCount, err := getEnvAsInt("RESULT_FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if resultFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("RESULT_FEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	resultFeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("RESULT_FEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if resultFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RESULT_FEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	resultFeedCircuitHalfOpenReq, err := getEnvAsInt("RESULT_FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULT_FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if resultFeedCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("RESULT_FEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "mixqueue-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		StorageDriver:           storageDriver,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalServiceToken:    strings.TrimSpace(getEnv("INTERNAL_SERVICE_TOKEN", "")),

		TeamSize:               teamSize,
		StartingRating:         startingRating,
		CandidateMapCount:      candidateMapCount,
		FallbackCandidateCount: fallbackCandidateCount,
		LobbyMaxAge:            lobbyMaxAge,
		LobbySweepInterval:     lobbySweepInterval,

		ResultFeedEnabled:             resultFeedEnabled,
		ResultFeedURL:                 resultFeedURL,
		ResultFeedToken:               strings.TrimSpace(getEnv("RESULT_FEED_TOKEN", "")),
		ResultFeedTimeout:             resultFeedTimeout,
		ResultFeedCircuitEnabled:      resultFeedCircuitEnabled,
		ResultFeedCircuitFailureCount: resultFeedCircuitFailureCount,
		ResultFeedCircuitOpenTimeout:  resultFeedCircuitOpenTimeout,
		ResultFeedCircuitHalfOpenReq:  resultFeedCircuitHalfOpenReq,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AppEnv == EnvProd && cfg.InternalServiceToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_SERVICE_TOKEN is required when APP_ENV=prod")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
