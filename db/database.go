package db

import (
	"fmt"
	"log"
	"net/url"

	"sar_tracker_go/models"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the database backend. A Turso URL wins over the local path.
type Options struct {
	Path        string
	Environment string
	TursoURL    string
	TursoToken  string
}

// Initialize opens either a hosted libSQL database or a local SQLite file in WAL mode
func Initialize(opts Options) error {
	// Determine log level based on environment
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var err error
	if opts.TursoURL != "" {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        tursoDSN(opts.TursoURL, opts.TursoToken),
		}), gormConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to Turso database: %w", err)
		}
		log.Println("Database connection established (Turso/libSQL)")
		return nil
	}

	// Enable WAL mode for better concurrency support
	DB, err = gorm.Open(sqlite.Open(opts.Path+"?_journal_mode=WAL&_foreign_keys=on"), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// tursoDSN appends the auth token to a libsql:// URL
func tursoDSN(rawURL, token string) string {
	if token == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// Models lists every table the tracker owns, in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.SARCase{},
		&models.CaseUpdate{},
		&models.CaseFile{},
		&models.Escalation{},
		&models.Reminder{},
	}
}

// AutoMigrate runs database migrations for the tracker's models
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
