package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/football-archive/pipeline/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	KeyModeLenient = "lenient"
	KeyModeStrict  = "strict"
)

// Config stores runtime configuration for the pipeline commands.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level
	LogFormat      string `validate:"oneof=json console"`

	DataDir          string
	ClubMasterPath   string `validate:"required"`
	LeagueMasterPath string `validate:"required"`
	SquadsPath       string `validate:"required"`
	CallupsPath      string `validate:"required"`
	TransfersPath    string `validate:"required"`
	MatchEventsPath  string `validate:"required"`
	NameMapPath      string `validate:"required"`
	NameFailuresPath string `validate:"required"`

	KeyMode             string        `validate:"oneof=lenient strict"`
	NameFailureCooldown time.Duration `validate:"gt=0"`

	LookupEndpoint              string        `validate:"required,url"`
	LookupUserAgent             string        `validate:"required"`
	LookupWorkers               int           `validate:"min=1,max=32"`
	LookupDelay                 time.Duration `validate:"gte=0"`
	LookupTimeout               time.Duration `validate:"gt=0"`
	LookupMaxAttempts           int           `validate:"min=1,max=10"`
	LookupBackoffBase           time.Duration `validate:"gte=0"`
	LookupBackoffMultiplier     float64       `validate:"gte=1"`
	LookupBackoffMax            time.Duration `validate:"gt=0"`
	LookupCacheTTL              time.Duration `validate:"gte=0"`
	LookupCircuitEnabled        bool
	LookupCircuitFailureCount   int           `validate:"min=1"`
	LookupCircuitOpenTimeout    time.Duration `validate:"gt=0"`
	LookupCircuitHalfOpenMaxReq int           `validate:"min=1"`

	UptraceEnabled         bool
	UptraceDSN             string `validate:"required_if=UptraceEnabled true"`
	PyroscopeEnabled       bool
	PyroscopeServerAddress string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName       string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	logFormatDefault := logging.FormatConsole
	if appEnv == EnvProd {
		logFormatDefault = logging.FormatJSON
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	dataPath := func(key, name string) string {
		return strings.TrimSpace(getEnv(key, filepath.Join(dataDir, name)))
	}

	cooldown, err := getEnvAsDuration("NAME_FAILURE_COOLDOWN", "720h")
	if err != nil {
		return Config{}, err
	}

	lookupWorkers, err := getEnvAsInt("LOOKUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_WORKERS: %w", err)
	}
	lookupDelay, err := getEnvAsDuration("LOOKUP_DELAY", "1s")
	if err != nil {
		return Config{}, err
	}
	lookupTimeout, err := getEnvAsDuration("LOOKUP_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	lookupMaxAttempts, err := getEnvAsInt("LOOKUP_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_MAX_ATTEMPTS: %w", err)
	}
	lookupBackoffBase, err := getEnvAsDuration("LOOKUP_BACKOFF_BASE", "2s")
	if err != nil {
		return Config{}, err
	}
	lookupBackoffMultiplier, err := strconv.ParseFloat(getEnv("LOOKUP_BACKOFF_MULTIPLIER", "2"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_BACKOFF_MULTIPLIER: %w", err)
	}
	lookupBackoffMax, err := getEnvAsDuration("LOOKUP_BACKOFF_MAX", "30s")
	if err != nil {
		return Config{}, err
	}
	lookupCacheTTL, err := getEnvAsDuration("LOOKUP_CACHE_TTL", "1h")
	if err != nil {
		return Config{}, err
	}

	lookupCircuitEnabled, err := strconv.ParseBool(getEnv("LOOKUP_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_CIRCUIT_ENABLED: %w", err)
	}
	lookupCircuitFailureCount, err := getEnvAsInt("LOOKUP_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	lookupCircuitOpenTimeout, err := getEnvAsDuration("LOOKUP_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	lookupCircuitHalfOpenMaxReq, err := getEnvAsInt("LOOKUP_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 strings.TrimSpace(getEnv("APP_SERVICE_NAME", "football-archive")),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                    logLevel,
		LogFormat:                   strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logFormatDefault))),
		DataDir:                     dataDir,
		ClubMasterPath:              dataPath("CLUB_MASTER_PATH", "clubs_master.csv"),
		LeagueMasterPath:            dataPath("LEAGUE_MASTER_PATH", "leagues_master.csv"),
		SquadsPath:                  dataPath("SQUADS_PATH", "club_squads.csv"),
		CallupsPath:                 dataPath("CALLUPS_PATH", "callups.csv"),
		TransfersPath:               dataPath("TRANSFERS_PATH", "transfers.csv"),
		MatchEventsPath:             dataPath("MATCH_EVENTS_PATH", "match_events.csv"),
		NameMapPath:                 dataPath("NAME_MAP_PATH", "name_map.csv"),
		NameFailuresPath:            dataPath("NAME_FAILURES_PATH", "name_map_failures.csv"),
		KeyMode:                     strings.ToLower(strings.TrimSpace(getEnv("KEY_MODE", KeyModeLenient))),
		NameFailureCooldown:         cooldown,
		LookupEndpoint:              strings.TrimSpace(getEnv("LOOKUP_ENDPOINT", "https://query.wikidata.org/sparql")),
		LookupUserAgent:             strings.TrimSpace(getEnv("LOOKUP_USER_AGENT", "football-archive-pipeline/1.0 (+https://github.com/football-archive/pipeline)")),
		LookupWorkers:               lookupWorkers,
		LookupDelay:                 lookupDelay,
		LookupTimeout:               lookupTimeout,
		LookupMaxAttempts:           lookupMaxAttempts,
		LookupBackoffBase:           lookupBackoffBase,
		LookupBackoffMultiplier:     lookupBackoffMultiplier,
		LookupBackoffMax:            lookupBackoffMax,
		LookupCacheTTL:              lookupCacheTTL,
		LookupCircuitEnabled:        lookupCircuitEnabled,
		LookupCircuitFailureCount:   lookupCircuitFailureCount,
		LookupCircuitOpenTimeout:    lookupCircuitOpenTimeout,
		LookupCircuitHalfOpenMaxReq: lookupCircuitHalfOpenMaxReq,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation by its
// environment variable name.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate config: %w", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", envName(fe.StructField()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

// Strict reports whether duplicate master keys and conflicting name map
// aliases are errors.
func (c Config) Strict() bool {
	return c.KeyMode == KeyModeStrict
}

var envNames = map[string]string{
	"AppEnv":           "APP_ENV",
	"ServiceName":      "APP_SERVICE_NAME",
	"LogFormat":        "APP_LOG_FORMAT",
	"KeyMode":          "KEY_MODE",
	"ClubMasterPath":   "CLUB_MASTER_PATH",
	"LeagueMasterPath": "LEAGUE_MASTER_PATH",
	"UptraceDSN":       "UPTRACE_DSN",
}

// envName maps a field name to its variable: LookupWorkers -> LOOKUP_WORKERS.
func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(field[i-1])
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
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

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
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
