package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RosterRecord represents the roster table
type RosterRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"unique;not null" json:"username"`
	Status           string    `gorm:"not null" json:"status"`
	MarchesAvailable int       `gorm:"not null" json:"marches_available"`
	InfCav           int       `gorm:"default:0" json:"inf_cav"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderRecord represents the orders table
type OrderRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RunID        string `gorm:"index;not null" json:"run_id"`
	Position     int    `gorm:"not null" json:"position"`
	From         string `gorm:"column:from_user;not null" json:"from"`
	Status       string `gorm:"not null" json:"status"`
	SendTo       string `gorm:"not null" json:"send_to"`
	TargetStatus string `gorm:"not null" json:"target_status"`
	Pass         int    `gorm:"default:0" json:"pass"`
}

// PublishRun represents the publish_runs table
type PublishRun struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RunID       string    `gorm:"unique;not null" json:"run_id"`
	Players     int       `gorm:"not null" json:"players"`
	Sends       int       `gorm:"not null" json:"sends"`
	Unmatched   int       `gorm:"default:0" json:"unmatched"`
	PublishedAt time.Time `json:"published_at"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Options selects the backing database
type Options struct {
	// DatabaseURL is a Postgres DSN; when empty SQLite at DataPath is used
	DatabaseURL string
	DataPath    string
	Silent      bool
}

// InitDB opens the database connection and migrates the schema
func InitDB(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var db *gorm.DB
	var err error
	if opts.DatabaseURL != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "troop_swap.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&RosterRecord{}, &OrderRecord{}, &PublishRun{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
