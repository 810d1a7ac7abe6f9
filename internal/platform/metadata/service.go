package metadata

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key within a transaction.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers for Type Conversion ---

// GetLastSnapshotRecordID is a helper that retrieves and parses the last snapshot record ID.
func GetLastSnapshotRecordID(db *gorm.DB) (uint, error) {
	valueStr, err := GetValue(db, LastSnapshotRecordIDKey)
	if err != nil {
		return 0, err
	}
	if valueStr == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastSnapshotRecordIDKey, err)
	}
	return uint(id), nil
}

// SetLastSnapshotRecordID is a helper that formats and sets the last snapshot record ID.
func SetLastSnapshotRecordID(db *gorm.DB, recordID uint) error {
	valueStr := strconv.FormatUint(uint64(recordID), 10)
	return SetValue(db, LastSnapshotRecordIDKey, valueStr)
}
