package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-frontdesk/store"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

// MySQLDSN resolves the DSN from MYSQL_URL/DATABASE_URL (URL or raw DSN form)
// or from the DB_* variables.
func MySQLDSN(db DatabaseConfig) (string, error) {
	if raw := db.URL; raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	port := db.Port
	if port == "" {
		port = "3306"
	}
	mc := mysqldriver.NewConfig()
	mc.User = db.User
	mc.Passwd = db.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(db.Host, port)
	mc.DBName = db.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN(), nil
}

// PostgresDSN resolves the DSN from DATABASE_URL or from the DB_* variables.
func PostgresDSN(db DatabaseConfig) string {
	if db.URL != "" {
		return db.URL
	}
	port := db.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		db.Host, db.User, db.Password, db.Name, port,
	)
}

// ConnectDatabase opens the SQL database for the configured driver, migrates
// the front desk tables and seeds the fixture rooms when enabled.
func ConnectDatabase(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case DriverMySQL:
		dsn, err := MySQLDSN(cfg.Database)
		if err != nil {
			return nil, err
		}
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(PostgresDSN(cfg.Database))
	default:
		return nil, fmt.Errorf("store driver %q has no database", cfg.Store.Driver)
	}

	newLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.Server.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.Store.SeedFixtures {
		n, err := store.SeedRooms(db, store.FixtureRoomNumbers)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			log.WithField("rooms", n).Info("fixture rooms seeded")
		}
	}
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "error", "fatal", "panic":
		return logger.Error
	default:
		return logger.Warn
	}
}
