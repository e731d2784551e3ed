package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the doctor's gender as stored in the doctors table.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// IsValid reports whether g is one of the known genders.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// Doctor represents a practitioner managed by the clinic admin.
// ImageURL is derived from Name and Gender when the record is created
// and is never written afterwards.
type Doctor struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex:idx_doctors_email;not null" json:"email"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone"`
	Speciality string    `gorm:"type:varchar(100)" json:"speciality"`
	Gender     Gender    `gorm:"type:varchar(10);not null" json:"gender"`
	IsActive   bool      `gorm:"not null;index" json:"is_active"`
	ImageURL   string    `gorm:"type:text;not null" json:"image_url"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorWithAppointmentCount is the listing read model: a doctor plus the
// number of appointments referencing it, computed at query time.
type DoctorWithAppointmentCount struct {
	Doctor
	AppointmentCount int64 `gorm:"column:appointment_count" json:"appointment_count"`
}

// DoctorMutableColumns lists the only columns an update may write.
var DoctorMutableColumns = []string{"name", "email", "phone", "speciality", "gender", "is_active"}
