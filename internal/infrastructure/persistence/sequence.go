package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// documentSequence is the last number issued to a tenant for one document
// kind on one day
type documentSequence struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind     string    `gorm:"type:varchar(10);primaryKey"`
	Day      string    `gorm:"type:char(8);primaryKey"`
	Last     int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (documentSequence) TableName() string {
	return "document_sequences"
}

const (
	bumpSequenceSQL = `UPDATE document_sequences SET last = last + 1
		WHERE tenant_id = ? AND kind = ? AND day = ? RETURNING last`
	insertSequenceSQL = `INSERT INTO document_sequences (tenant_id, kind, day, last) VALUES (?, ?, ?, ?)
		ON CONFLICT (tenant_id, kind, day) DO UPDATE SET last = document_sequences.last + 1
		RETURNING last`
)

// issueSequence reserves the next number of kind for the day of at. The
// sequence row stays locked until the surrounding transaction ends, so two
// registers of one tenant never draw the same number.
//
// The first number of a day comes from seed, which scans the documents
// already stored. A register that loses the race to create the row has its
// insert turned into a bump of the winner's row.
func issueSequence(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, kind string, at time.Time, seed func() (int, error)) (int, error) {
	day := at.Format("20060102")

	var last int
	result := conn(ctx, db).Raw(bumpSequenceSQL, tenantID, kind, day).Scan(&last)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		return last, nil
	}

	first, err := seed()
	if err != nil {
		return 0, err
	}
	if err := conn(ctx, db).Raw(insertSequenceSQL, tenantID, kind, day, first).Scan(&last).Error; err != nil {
		return 0, err
	}
	return last, nil
}
