package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Bhatter1986/Options-analysis/interfaces"
	"github.com/Bhatter1986/Options-analysis/models"
)

// LocalStorage implements the InstrumentStore interface using SQLite
type LocalStorage struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewLocalStorage creates a new local storage service
func NewLocalStorage(dbPath string) (*LocalStorage, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open SQLite database
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate schemas
	if err := db.AutoMigrate(&models.DBInstrument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &LocalStorage{
		db:     db,
		logger: log,
	}, nil
}

// SaveInstruments replaces the instrument catalog in one transaction.
// The scrip master is a full dump, so a refresh is a full replace.
func (s *LocalStorage) SaveInstruments(instruments []*interfaces.Instrument) error {
	if len(instruments) == 0 {
		return nil
	}

	s.logger.WithField("count", len(instruments)).Info("Saving instruments to database")

	dbInstruments := make([]*models.DBInstrument, len(instruments))
	for i, inst := range instruments {
		dbInstruments[i] = &models.DBInstrument{
			SecurityID:       inst.SecurityID,
			Symbol:           inst.Symbol,
			DisplayName:      inst.DisplayName,
			Exchange:         inst.Exchange,
			Segment:          inst.Segment,
			InstrumentType:   inst.InstrumentType,
			UnderlyingSymbol: inst.UnderlyingSymbol,
			LotSize:          inst.LotSize,
			StrikeStep:       inst.StrikeStep,
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Hard delete: soft-deleted rows would trip the security id
		// unique index on re-insert.
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.DBInstrument{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(&dbInstruments, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save instruments: %w", err)
	}

	s.logger.WithField("saved", len(dbInstruments)).Info("Instruments saved successfully")
	return nil
}

// SearchInstruments finds instruments whose symbol or display name
// contains the query, case-insensitively.
func (s *LocalStorage) SearchInstruments(query string, limit int) ([]*interfaces.Instrument, error) {
	if limit <= 0 {
		limit = 20
	}

	var dbInstruments []*models.DBInstrument
	pattern := "%" + query + "%"
	result := s.db.Where("symbol LIKE ? OR display_name LIKE ? OR underlying_symbol LIKE ?", pattern, pattern, pattern).
		Order("symbol ASC").
		Limit(limit).
		Find(&dbInstruments)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search instruments: %w", result.Error)
	}

	return toInstruments(dbInstruments), nil
}

// ListInstruments returns the catalog up to limit entries
func (s *LocalStorage) ListInstruments(limit int) ([]*interfaces.Instrument, error) {
	if limit <= 0 {
		limit = 100
	}

	var dbInstruments []*models.DBInstrument
	result := s.db.Order("symbol ASC").Limit(limit).Find(&dbInstruments)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", result.Error)
	}

	return toInstruments(dbInstruments), nil
}

// CountInstruments returns the catalog size
func (s *LocalStorage) CountInstruments() (int64, error) {
	var count int64
	result := s.db.Model(&models.DBInstrument{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count instruments: %w", result.Error)
	}
	return count, nil
}

func toInstruments(dbInstruments []*models.DBInstrument) []*interfaces.Instrument {
	instruments := make([]*interfaces.Instrument, len(dbInstruments))
	for i, dbInst := range dbInstruments {
		instruments[i] = &interfaces.Instrument{
			SecurityID:       dbInst.SecurityID,
			Symbol:           dbInst.Symbol,
			DisplayName:      dbInst.DisplayName,
			Exchange:         dbInst.Exchange,
			Segment:          dbInst.Segment,
			InstrumentType:   dbInst.InstrumentType,
			UnderlyingSymbol: dbInst.UnderlyingSymbol,
			LotSize:          dbInst.LotSize,
			StrikeStep:       dbInst.StrikeStep,
		}
	}
	return instruments
}

// Close closes the database connection
func (s *LocalStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
