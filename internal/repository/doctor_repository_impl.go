package repository

import (
	"context"
	"errors"

	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"
	"clinic-admin/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const doctorEmailConstraint = "email"

// appointment_count is computed per row so the listing never groups over doctors.*
const doctorWithCountSelect = "doctors.*, " +
	"(SELECT COUNT(*) FROM appointments WHERE appointments.doctor_id = doctors.id) AS appointment_count"

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	err := database.Conn(ctx, r.db).Create(doctor).Error
	if database.IsUniqueViolation(err, doctorEmailConstraint) {
		return domainRepo.ErrDuplicateEmail
	}
	return err
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := database.Conn(ctx, r.db).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindWithAppointmentCount(ctx context.Context, id uuid.UUID) (*entity.DoctorWithAppointmentCount, error) {
	var rows []entity.DoctorWithAppointmentCount
	err := database.Conn(ctx, r.db).
		Model(&entity.Doctor{}).
		Select(doctorWithCountSelect).
		Where("doctors.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *doctorRepository) FindAllWithAppointmentCount(ctx context.Context, filter domainRepo.DoctorListFilter) ([]entity.DoctorWithAppointmentCount, error) {
	query := database.Conn(ctx, r.db).
		Model(&entity.Doctor{}).
		Select(doctorWithCountSelect)

	if filter.ActiveOnly {
		query = query.Where("doctors.is_active = ?", true)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = domainRepo.DoctorOrderNewestFirst
	}

	doctors := []entity.DoctorWithAppointmentCount{}
	if err := query.Order(orderBy).Scan(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// Update writes only the mutable columns; id, image_url and created_at are
// left as stored.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	err := database.Conn(ctx, r.db).
		Model(doctor).
		Select(append([]string{"updated_at"}, entity.DoctorMutableColumns...)).
		Updates(doctor).Error
	if database.IsUniqueViolation(err, doctorEmailConstraint) {
		return domainRepo.ErrDuplicateEmail
	}
	return err
}
