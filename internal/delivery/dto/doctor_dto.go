package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Speciality string `json:"speciality" validate:"omitempty,max=100"`
	Gender     string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active" validate:"omitempty"`
}

// UpdateDoctorRequest replaces every mutable field of a doctor.
type UpdateDoctorRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Speciality string `json:"speciality" validate:"omitempty,max=100"`
	Gender     string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	IsActive   *bool  `json:"is_active" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Speciality       string    `json:"speciality"`
	Gender           string    `json:"gender"`
	IsActive         bool      `json:"is_active"`
	ImageURL         string    `json:"image_url"`
	AppointmentCount int64     `json:"appointment_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
