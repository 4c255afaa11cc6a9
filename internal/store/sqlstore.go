package store

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// recordKey is the single row the blob lives under, the equivalent of the
// browser's localStorage key.
const recordKey = "tailorData"

type recordRow struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (recordRow) TableName() string { return "records" }

// SQLBackend stores the record blob as one keyed row. The row is replaced
// wholesale on every save; concurrent writers are last-writer-wins, same as
// the file backend.
type SQLBackend struct {
	db *gorm.DB
}

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// OpenSQL connects using either a postgres DSN (URL or key=value form) or,
// for anything else, a sqlite path/URI, and migrates the records table.
func OpenSQL(dsn string) (*SQLBackend, error) {
	dialector := pickDialector(dsn)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

// NewSQLBackend wraps an existing connection, mainly for tests.
func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

func pickDialector(dsn string) gorm.Dialector {
	s := strings.TrimSpace(strings.Trim(dsn, "\"'"))
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return postgres.Open(s)
	}
	if kvPairRegex.MatchString(s) {
		if !strings.Contains(lower, "sslmode=") {
			s += " sslmode=disable"
		}
		return postgres.Open(s)
	}
	return sqlite.Open(s)
}

func (b *SQLBackend) Load() ([]byte, error) {
	var row recordRow
	err := b.db.First(&row, "key = ?", recordKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

func (b *SQLBackend) Save(data []byte) error {
	row := recordRow{Key: recordKey, Data: datatypes.JSON(data)}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (b *SQLBackend) Reset() error {
	return b.db.Delete(&recordRow{}, "key = ?", recordKey).Error
}
