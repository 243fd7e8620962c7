package models

import (
	"gorm.io/gorm"
)

// DBInstrument represents a scrip master catalog row in the database
type DBInstrument struct {
	gorm.Model
	SecurityID       string `gorm:"uniqueIndex"`
	Symbol           string `gorm:"index"`
	DisplayName      string
	Exchange         string
	Segment          string
	InstrumentType   string
	UnderlyingSymbol string `gorm:"index"`
	LotSize          int
	StrikeStep       float64
}
