package config

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string
}

// Load membaca konfigurasi dari environment. Kredensial (DSN MySQL) wajib
// dari env, tidak ada default yang di-hardcode.
func Load() *Config {
	cfg := &Config{
		Port:     os.Getenv("PORT"),
		DBDriver: os.Getenv("DB_DRIVER"),
		DBDSN:    os.Getenv("DB_DSN"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	return cfg
}

// InitDB membuka koneksi database sesuai driver yang dikonfigurasi.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "reservation.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "mysql":
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN is required for mysql")
		}
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
