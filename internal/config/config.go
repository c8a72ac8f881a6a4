package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	NotifyService NotifyService `toml:"notify_service"`
	Clinic        Clinic        `toml:"clinic"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN возвращает строку подключения к базе данных
func (d *Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// NotifyService настройки клиента шлюза уведомлений (WhatsApp/SMS)
type NotifyService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Clinic настройки клиники: расписание слотов и правила записи
type Clinic struct {
	// ClosedWeekday день недели, когда клиника закрыта (например, "Sunday")
	ClosedWeekday string `toml:"closed_weekday"`

	// LeadTimeMinutes минимальное время до начала слота для обычной записи
	LeadTimeMinutes int `toml:"lead_time_minutes"`

	Slots []Slot `toml:"slots"`
}

// Slot определение одного дневного слота в конфигурации
type Slot struct {
	Label           string `toml:"label"`
	StartTime       string `toml:"start_time"` // "10:30" (24-часовой формат)
	EndTime         string `toml:"end_time"`
	Capacity        int    `toml:"capacity"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Clinic.LeadTimeMinutes == 0 {
		cfg.Clinic.LeadTimeMinutes = domain.DefaultLeadTimeMinutes
	}

	return &cfg, nil
}

// ClosedWeekday возвращает день недели закрытия клиники
// Пустое или нераспознанное значение означает, что клиника работает без выходных
func (c *Clinic) ClosedWeekdayValue() (time.Weekday, bool) {
	switch c.ClosedWeekday {
	case "Sunday":
		return time.Sunday, true
	case "Monday":
		return time.Monday, true
	case "Tuesday":
		return time.Tuesday, true
	case "Wednesday":
		return time.Wednesday, true
	case "Thursday":
		return time.Thursday, true
	case "Friday":
		return time.Friday, true
	case "Saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}

// ToCatalog собирает каталог слотов из конфигурации
// Каталог создается один раз при старте процесса и передается явно
// во все компоненты
func (c *Clinic) ToCatalog() (*domain.SlotCatalog, error) {
	defs := make([]domain.SlotDefinition, 0, len(c.Slots))

	for _, s := range c.Slots {
		start, err := types.TimeString(s.StartTime).MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("config: slot %q: invalid start_time %q: %w", s.Label, s.StartTime, err)
		}

		end, err := types.TimeString(s.EndTime).MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("config: slot %q: invalid end_time %q: %w", s.Label, s.EndTime, err)
		}

		duration := s.DurationMinutes
		if duration == 0 {
			duration = end - start
		}

		defs = append(defs, domain.SlotDefinition{
			Label:           s.Label,
			StartMinute:     start,
			EndMinute:       end,
			Capacity:        s.Capacity,
			DurationMinutes: duration,
		})
	}

	return domain.NewSlotCatalog(defs)
}
