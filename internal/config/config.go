package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Logs           LogsConfig           `toml:"logs"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CalendarBridge CalendarBridgeConfig `toml:"calendar_bridge"`
	Notifier       NotifierConfig       `toml:"notifier"`
	Provisioning   ProvisioningConfig   `toml:"provisioning"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis (очередь задач провижининга)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarBridgeConfig настройки шлюза календаря (создание событий и Meet-ссылок).
// Явный value object: таймзона и имя приложения передаются в конструктор
// адаптера, а не читаются из глобального состояния.
type CalendarBridgeConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"` // секунды
	ApplicationName string `toml:"application_name"`
	DefaultTimezone string `toml:"default_timezone"`
}

// NotifierConfig настройки сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ProvisioningConfig настройки воркера провижининга встреч
type ProvisioningConfig struct {
	QueueKey     string `toml:"queue_key"`
	MaxAttempts  int    `toml:"max_attempts"`
	DequeueBlock int    `toml:"dequeue_block"` // секунды блокировки BRPOP
	DedupTTL     int    `toml:"dedup_ttl"`     // секунды жизни ключа дедупликации
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.host is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "logs/service.log"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "advisor-booking-service"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.CalendarBridge.Timeout == 0 {
		cfg.CalendarBridge.Timeout = 10
	}
	if cfg.CalendarBridge.ApplicationName == "" {
		cfg.CalendarBridge.ApplicationName = "Advisor Booking"
	}
	if cfg.CalendarBridge.DefaultTimezone == "" {
		cfg.CalendarBridge.DefaultTimezone = "UTC"
	}
	if cfg.Notifier.Timeout == 0 {
		cfg.Notifier.Timeout = 5
	}
	if cfg.Provisioning.QueueKey == "" {
		cfg.Provisioning.QueueKey = "provisioning:tasks"
	}
	if cfg.Provisioning.MaxAttempts == 0 {
		cfg.Provisioning.MaxAttempts = 5
	}
	if cfg.Provisioning.DequeueBlock == 0 {
		cfg.Provisioning.DequeueBlock = 5
	}
	if cfg.Provisioning.DedupTTL == 0 {
		cfg.Provisioning.DedupTTL = 3600
	}
}
