package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds everything the process reads from the environment.
// godotenv loads .env in main before this is processed.
type Config struct {
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
	Port        string `envconfig:"PORT" default:"5000"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"public"`
	GinMode     string `envconfig:"GIN_MODE" default:"debug"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// InitDB opens the MySQL connection and returns the handle; callers pass
// it down explicitly, there is no package-level connection.
func InitDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{
		// Duplicate-key errors must surface as gorm.ErrDuplicatedKey so
		// the reservation service can map slot-index violations to the
		// conflict response.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
