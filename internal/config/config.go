package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Payments      PaymentsConfig      `toml:"payments"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PaymentsConfig политика обработки платежей
type PaymentsConfig struct {
	// PendingExpiryMinutes возраст pending-платежа, после которого он
	// помечается failed фоновой задачей
	PendingExpiryMinutes int `toml:"pending_expiry_minutes"`
	// SweepSchedule cron-расписание фоновой задачи (формат robfig/cron)
	SweepSchedule string `toml:"sweep_schedule"`
}

// NotificationsConfig настройки отправки уведомлений
// API-ключ SendGrid берётся из переменной окружения SENDGRID_API_KEY
type NotificationsConfig struct {
	Enabled   bool   `toml:"enabled"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Payments.PendingExpiryMinutes <= 0 {
		cfg.Payments.PendingExpiryMinutes = 30
	}
	if cfg.Payments.SweepSchedule == "" {
		cfg.Payments.SweepSchedule = "@every 10m"
	}

	return &cfg, nil
}
