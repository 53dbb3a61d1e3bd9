package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

// Tables the rest of the app depends on; checked after migration.
var coreTables = []string{"account_transactions", "cash_transactions", "sales", "inventory", "pending_orders"}

func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	log := logger.WithComponent("db")
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, errors.New("empty DATABASE_DSN")
	}
	logLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = gormlogger.Info
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info().Str("dsn", maskDSN(dsn)).Msg("connected")

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise AutoMigrate (dev convenience).
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := RunSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(conn); err != nil {
			return nil, err
		}
	}

	for _, table := range coreTables {
		if !conn.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return conn, nil
}

// AutoMigrate creates or updates the schema from the GORM models. Used by
// development startup and by the sqlite test databases.
func AutoMigrate(conn *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Client{}, &models.Provider{}, &models.InventoryItem{}, &models.Sale{},
		&models.AccountTransaction{}, &models.CashTransaction{}, &models.PendingOrder{},
	}
	for _, m := range toMigrate {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// RunSQLMigrations executes migrations in ./migrations using golang-migrate's file source.
func RunSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

var passwordRegex = regexp.MustCompile(`(password=)([^\s]+)`)

func maskDSN(dsn string) string {
	if strings.Contains(dsn, "password=") {
		return passwordRegex.ReplaceAllString(dsn, `${1}***`)
	}
	if i := strings.Index(dsn, "://"); i >= 0 {
		if at := strings.Index(dsn, "@"); at > i {
			return dsn[:i+3] + "***" + dsn[at:]
		}
	}
	return dsn
}
