package repository

import (
	"errors"
	"time"

	"github.com/octavertex/workhub/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateAttendance is returned when a record for the (user, date) pair
// already exists at clock-in.
var ErrDuplicateAttendance = errors.New("attendance repository: record already exists for this date")

// GormAttendanceRepository is a GORM implementation of AttendanceRepository
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByID finds an attendance record by ID
func (r *GormAttendanceRepository) FindByID(id uint64) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUserAndDate finds the record for a user on a calendar date
func (r *GormAttendanceRepository) FindByUserAndDate(userID uint64, date time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateClockIn inserts the day's record. The existence check runs inside the
// same transaction that creates the row; the unique (user_id, date) index
// backs it against races.
func (r *GormAttendanceRepository) CreateClockIn(record *models.AttendanceRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.AttendanceRecord
		err := forUpdate(tx).
			Where("user_id = ? AND date = ?", record.UserID, record.Date).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateAttendance
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(record).Error
	})
}

// Update persists record mutations
func (r *GormAttendanceRepository) Update(record *models.AttendanceRecord) error {
	return r.db.Save(record).Error
}

// FindShiftByOrganization returns the organization's shift policy
func (r *GormAttendanceRepository) FindShiftByOrganization(orgID uint64) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.Where("organization_id = ?", orgID).First(&shift).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListByUserBetween lists a user's records in [from, to), oldest first
func (r *GormAttendanceRepository) ListByUserBetween(userID uint64, from, to time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
