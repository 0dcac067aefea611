package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table. Column names match
// the flat record layout the operator console consumes, with times stored in
// their zero-padded "HH:MM" form and money in integer paise.
type BookingModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	Date          string    `gorm:"size:10;not null;index"`
	StartTime     string    `gorm:"size:5;not null"`
	EndTime       string    `gorm:"size:5;not null"`
	DurationHours float64   `gorm:"not null"`
	RatePerHour   int64     `gorm:"not null"`
	TotalCharge   int64     `gorm:"not null"`
	AdvancePaid   int64     `gorm:"not null;default:0"`
	BalancePaid   int64     `gorm:"not null;default:0"`
	PaymentMode   string    `gorm:"size:30;not null"`
	RemainingDue  int64     `gorm:"not null"`
	BookedBy      string    `gorm:"size:200"`
	Remarks       string    `gorm:"size:500"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// ScheduleRevisionModel is the single-row table backing the optimistic
// revision check on whole-set replacement.
type ScheduleRevisionModel struct {
	ID       int64 `gorm:"primaryKey;autoIncrement:false"`
	Revision int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (ScheduleRevisionModel) TableName() string {
	return "schedule_revisions"
}

const scheduleRevisionRowID = 1

// GormScheduleStore is the GORM-based implementation of schedule.Store.
type GormScheduleStore struct {
	db *gorm.DB
}

// NewGormScheduleStore creates a new GormScheduleStore.
func NewGormScheduleStore(db *gorm.DB) *GormScheduleStore {
	return &GormScheduleStore{db: db}
}

// LoadAll retrieves every booking together with the current schedule
// revision. A missing revision row reads as revision 0.
func (s *GormScheduleStore) LoadAll(ctx context.Context) ([]schedule.Booking, int64, error) {
	var rev ScheduleRevisionModel
	if err := s.db.WithContext(ctx).Where("id = ?", scheduleRevisionRowID).First(&rev).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("failed to load schedule revision: %w", err)
		}
		rev.Revision = 0
	}

	var models []BookingModel
	if err := s.db.WithContext(ctx).
		Order("date, start_time").
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load bookings: %w", err)
	}

	bookings := make([]schedule.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings, rev.Revision, nil
}

// ReplaceAll persists the record set as a whole with optimistic locking: the
// revision row is bumped only if it still matches expectedRevision, and a
// mismatch aborts the transaction before any booking row is touched.
func (s *GormScheduleStore) ReplaceAll(ctx context.Context, bookings []schedule.Booking, expectedRevision int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ScheduleRevisionModel{}).
			Where("id = ? AND revision = ?", scheduleRevisionRowID, expectedRevision).
			Update("revision", expectedRevision+1)
		if result.Error != nil {
			return fmt.Errorf("failed to bump schedule revision: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			if expectedRevision != 0 {
				return schedule.NewConflictError("schedule was modified by another operator")
			}
			// First write against a store that has no revision row yet.
			if err := tx.Create(&ScheduleRevisionModel{ID: scheduleRevisionRowID, Revision: 1}).Error; err != nil {
				return schedule.NewConflictError("schedule was modified by another operator")
			}
		}

		if err := tx.Where("id IS NOT NULL").Delete(&BookingModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear bookings: %w", err)
		}
		if len(bookings) == 0 {
			return nil
		}

		now := time.Now().UTC()
		models := make([]BookingModel, len(bookings))
		for i, b := range bookings {
			models[i] = toBookingModel(b, now)
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save bookings: %w", err)
		}
		return nil
	})
}

// --- Conversion Helpers ---

func toBookingModel(b schedule.Booking, now time.Time) BookingModel {
	return BookingModel{
		ID:            b.ID,
		Date:          string(b.Date),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		DurationHours: b.DurationHours,
		RatePerHour:   int64(b.RatePerHour),
		TotalCharge:   int64(b.TotalCharge),
		AdvancePaid:   int64(b.AdvancePaid),
		BalancePaid:   int64(b.BalancePaid),
		PaymentMode:   string(b.PaymentMode),
		RemainingDue:  int64(b.RemainingDue),
		BookedBy:      b.BookedBy,
		Remarks:       b.Remarks,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// toDomainBooking maps a stored row to the domain record, defaulting fields a
// drifted data set may have mangled: unparseable times read as 00:00 and
// unknown payment modes as cash. Id sanitization stays with the allocator.
func toDomainBooking(m *BookingModel) schedule.Booking {
	start, err := schedule.ParseTimeOfDay(m.StartTime)
	if err != nil {
		start = 0
	}
	end, err := schedule.ParseTimeOfDay(m.EndTime)
	if err != nil {
		end = 0
	}
	return schedule.Booking{
		ID:            m.ID,
		Date:          schedule.Date(m.Date),
		StartTime:     start,
		EndTime:       end,
		DurationHours: m.DurationHours,
		RatePerHour:   schedule.Money(m.RatePerHour),
		TotalCharge:   schedule.Money(m.TotalCharge),
		AdvancePaid:   schedule.Money(m.AdvancePaid),
		BalancePaid:   schedule.Money(m.BalancePaid),
		PaymentMode:   schedule.NormalizePaymentMode(m.PaymentMode),
		RemainingDue:  schedule.Money(m.RemainingDue),
		BookedBy:      m.BookedBy,
		Remarks:       m.Remarks,
	}
}
