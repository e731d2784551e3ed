package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is only read here to count a doctor's appointments.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	UserID    string            `gorm:"type:varchar(255);not null;index" json:"user_id"`
	Date      time.Time         `gorm:"not null" json:"date"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
