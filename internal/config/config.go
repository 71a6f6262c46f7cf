package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/ft5-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DataModeLocal = "local"
	DataModeWeb   = "web"
)

// Config stores runtime configuration for the service and the operator CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string

	DataMode                  string
	DataDir                   string
	DataPlayersPath           string
	DataCalendarPath          string
	DataStandingsPath         string
	DataPlayersURL            string
	DataCalendarURL           string
	DataStandingsURL          string
	DataTimeout               time.Duration
	DataMaxRetries            int
	DataCircuitEnabled        bool
	DataCircuitFailureCount   int
	DataCircuitOpenTimeout    time.Duration
	DataCircuitHalfOpenMaxReq int

	SnapshotTTL       time.Duration
	SnapshotWorkers   int
	LeagueTimezone    string
	LeagueLocation    *time.Location
	AssetsDir         string
	DefaultAvatar     string
	ReplayLinksMobile bool

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "ft5-league")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if err := loadDataSource(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLeague(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadDataSource(cfg *Config) error {
	var err error

	cfg.DataMode = strings.ToLower(strings.TrimSpace(getEnv("DATA_MODE", DataModeLocal)))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", "data"))
	cfg.DataPlayersPath = strings.TrimSpace(getEnv("DATA_PLAYERS_PATH", "jugadores.json"))
	cfg.DataCalendarPath = strings.TrimSpace(getEnv("DATA_CALENDAR_PATH", "calendario.json"))
	cfg.DataStandingsPath = strings.TrimSpace(getEnv("DATA_STANDINGS_PATH", "clasificacion_ordenada.json"))
	cfg.DataPlayersURL = strings.TrimSpace(getEnv("DATA_PLAYERS_URL", ""))
	cfg.DataCalendarURL = strings.TrimSpace(getEnv("DATA_CALENDAR_URL", ""))
	cfg.DataStandingsURL = strings.TrimSpace(getEnv("DATA_STANDINGS_URL", ""))

	switch cfg.DataMode {
	case DataModeLocal:
		if cfg.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required when DATA_MODE=%s", DataModeLocal)
		}
	case DataModeWeb:
		if cfg.DataPlayersURL == "" || cfg.DataCalendarURL == "" || cfg.DataStandingsURL == "" {
			return fmt.Errorf("DATA_PLAYERS_URL, DATA_CALENDAR_URL and DATA_STANDINGS_URL are required when DATA_MODE=%s", DataModeWeb)
		}
	default:
		return fmt.Errorf("invalid DATA_MODE %q: valid values are %s, %s", cfg.DataMode, DataModeLocal, DataModeWeb)
	}

	if cfg.DataTimeout, err = getEnvAsPositiveDuration("DATA_TIMEOUT", "10s"); err != nil {
		return err
	}
	if cfg.DataMaxRetries, err = getEnvAsInt("DATA_MAX_RETRIES", 1); err != nil {
		return fmt.Errorf("parse DATA_MAX_RETRIES: %w", err)
	}
	if cfg.DataMaxRetries < 0 {
		return fmt.Errorf("DATA_MAX_RETRIES must be >= 0")
	}
	if cfg.DataCircuitEnabled, err = getEnvAsBool("DATA_CIRCUIT_ENABLED", true); err != nil {
		return err
	}
	if cfg.DataCircuitFailureCount, err = getEnvAsInt("DATA_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.DataCircuitFailureCount < 1 {
		return fmt.Errorf("DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.DataCircuitOpenTimeout, err = getEnvAsPositiveDuration("DATA_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.DataCircuitHalfOpenMaxReq, err = getEnvAsInt("DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.DataCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return nil
}

func loadLeague(cfg *Config) error {
	var err error

	if cfg.SnapshotTTL, err = getEnvAsPositiveDuration("SNAPSHOT_TTL", "5m"); err != nil {
		return err
	}
	if cfg.SnapshotWorkers, err = getEnvAsInt("SNAPSHOT_WORKERS", 4); err != nil {
		return fmt.Errorf("parse SNAPSHOT_WORKERS: %w", err)
	}
	if cfg.SnapshotWorkers < 1 {
		return fmt.Errorf("SNAPSHOT_WORKERS must be >= 1")
	}

	cfg.LeagueTimezone = strings.TrimSpace(getEnv("LEAGUE_TIMEZONE", "Europe/Madrid"))
	if cfg.LeagueLocation, err = time.LoadLocation(cfg.LeagueTimezone); err != nil {
		return fmt.Errorf("load LEAGUE_TIMEZONE %q: %w", cfg.LeagueTimezone, err)
	}

	cfg.AssetsDir = strings.TrimSpace(getEnv("ASSETS_DIR", "img"))
	cfg.DefaultAvatar = strings.TrimSpace(getEnv("DEFAULT_AVATAR", "img/default.png"))
	if cfg.ReplayLinksMobile, err = getEnvAsBool("REPLAY_LINKS_MOBILE", false); err != nil {
		return err
	}

	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", true); err != nil {
		return err
	}

	if cfg.BetterStackEnabled, err = getEnvAsBool("BETTERSTACK_ENABLED", false); err != nil {
		return err
	}
	cfg.BetterStackEndpoint = strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	cfg.BetterStackToken = strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", ""))
	if cfg.BetterStackTimeout, err = getEnvAsPositiveDuration("BETTERSTACK_TIMEOUT", "3s"); err != nil {
		return err
	}
	cfg.BetterStackMinLevel = parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}

	return nil
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

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
