package repository

import (
	"context"
	"errors"

	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Create and Update when the doctors email
// unique index rejects the write.
var ErrDuplicateEmail = errors.New("duplicate doctor email")

// DoctorListFilter narrows and orders a doctor listing.
type DoctorListFilter struct {
	ActiveOnly bool
	OrderBy    string
}

const (
	DoctorOrderNewestFirst = "doctors.created_at DESC"
	DoctorOrderNameAsc     = "doctors.name ASC"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	FindWithAppointmentCount(ctx context.Context, id uuid.UUID) (*entity.DoctorWithAppointmentCount, error)
	FindAllWithAppointmentCount(ctx context.Context, filter DoctorListFilter) ([]entity.DoctorWithAppointmentCount, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
}
