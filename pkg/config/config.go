package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Matching MatchingConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the directory lookup caches. Entries are replaced whole
// so readers never observe partial values.
type CacheConfig struct {
	Enabled    bool
	StudentTTL time.Duration
	TeacherTTL time.Duration
	CourseTTL  time.Duration
	BookingTTL time.Duration
	DefaultTTL time.Duration
}

// MatchingConfig tunes the 1:1 booking matcher. Scoring weights are compiled
// constants, not configuration, because they are part of the algorithm
// contract.
type MatchingConfig struct {
	LookaheadDays         int
	AlternativeWindowDays int
	UseSyntheticSchedule  bool
	SyntheticScheduleSeed int64
	MeetingLinkBase       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:    v.GetBool("ENABLE_CACHE"),
		StudentTTL: parseDuration(v.GetString("CACHE_STUDENT_TTL"), 5*time.Minute),
		TeacherTTL: parseDuration(v.GetString("CACHE_TEACHER_TTL"), 5*time.Minute),
		CourseTTL:  parseDuration(v.GetString("CACHE_COURSE_TTL"), 10*time.Minute),
		BookingTTL: parseDuration(v.GetString("CACHE_BOOKING_TTL"), 30*time.Second),
		DefaultTTL: parseDuration(v.GetString("CACHE_DEFAULT_TTL"), 5*time.Minute),
	}

	cfg.Matching = MatchingConfig{
		LookaheadDays:         v.GetInt("MATCHING_LOOKAHEAD_DAYS"),
		AlternativeWindowDays: v.GetInt("MATCHING_ALTERNATIVE_WINDOW_DAYS"),
		UseSyntheticSchedule:  v.GetBool("MATCHING_SYNTHETIC_SCHEDULE"),
		SyntheticScheduleSeed: v.GetInt64("MATCHING_SYNTHETIC_SCHEDULE_SEED"),
		MeetingLinkBase:       v.GetString("MATCHING_MEETING_LINK_BASE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "academy_booking")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "kestrel-academy")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", true)
	v.SetDefault("CACHE_STUDENT_TTL", "5m")
	v.SetDefault("CACHE_TEACHER_TTL", "5m")
	v.SetDefault("CACHE_COURSE_TTL", "10m")
	v.SetDefault("CACHE_BOOKING_TTL", "30s")
	v.SetDefault("CACHE_DEFAULT_TTL", "5m")

	v.SetDefault("MATCHING_LOOKAHEAD_DAYS", 14)
	v.SetDefault("MATCHING_ALTERNATIVE_WINDOW_DAYS", 7)
	v.SetDefault("MATCHING_SYNTHETIC_SCHEDULE", false)
	v.SetDefault("MATCHING_SYNTHETIC_SCHEDULE_SEED", 0)
	v.SetDefault("MATCHING_MEETING_LINK_BASE", "https://meet.kestrel.academy/session")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
