// Package sequence issues the human-readable business numbers used across
// Provabook: PB2024-style order numbers, PI numbers and shipment numbers.
// One counter row per prefix+year keeps the increment atomic, so concurrent
// creations cannot mint the same number the way a find-max-then-increment
// scan can.
package sequence

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Prefixes for the generated number families.
const (
	PrefixOrder    = "PB"
	PrefixPI       = "PI"
	PrefixShipment = "SH"
)

// Counter is one named sequence. The key embeds the year ("PB2024"), so a
// year rollover lands on a fresh row and restarts the sequence at 1.
type Counter struct {
	Key   string `gorm:"primaryKey;size:20"`
	Value int    `gorm:"not null"`
}

func (Counter) TableName() string {
	return "sequence_counters"
}

// Next returns the next number for prefix in the year of now, formatted as
// <prefix><year><4-digit sequence>, e.g. PB20240007. The upsert and the
// read-back run in one transaction; under concurrency the conflicting
// update serializes on the counter row.
func Next(db *gorm.DB, prefix string, now time.Time) (string, error) {
	key := fmt.Sprintf("%s%d", prefix, now.Year())

	var value int
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("sequence_counters.value + 1"),
			}),
		}).Create(&Counter{Key: key, Value: 1}).Error; err != nil {
			return err
		}

		var c Counter
		if err := tx.First(&c, "key = ?", key).Error; err != nil {
			return err
		}
		value = c.Value
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", key, value), nil
}
