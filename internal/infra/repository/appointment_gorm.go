package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	id uint,
	fields map[string]interface{},
) error {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("appointment_not_found", "Appointment does not exist.")
		}
		return err
	}

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete hard-deletes a row. Only the create saga's compensation
// calls this.
func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindByClient(
	ctx context.Context,
	clientID uint,
	state domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if state != "" {
		q = q.Where("status = ?", string(state))
	}

	var apps []models.Appointment
	if err := q.
		Order("created_at DESC, date DESC, time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindByRange(
	ctx context.Context,
	from string,
	to string,
	states []domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	if len(states) > 0 {
		q = q.Where("status IN ?", statusStrings(states))
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *AppointmentGormRepository) FindBySlot(
	ctx context.Context,
	date string,
	hour string,
	states []domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ? AND time = ? AND status IN ?", date, hour, statusStrings(states)).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountBySlot(
	ctx context.Context,
	date string,
	hour string,
	states []domain.Status,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date = ? AND time = ? AND status IN ?", date, hour, statusStrings(states)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Statistics
// --------------------------------------------------

func (r *AppointmentGormRepository) CountByState(
	ctx context.Context,
	from string,
	to string,
) (map[domain.Status]int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := q.
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Total
	}
	return counts, nil
}

func statusStrings(states []domain.Status) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
