package converter

import (
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor, appointmentCount int64) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:               doctor.ID,
		Name:             doctor.Name,
		Email:            doctor.Email,
		Phone:            doctor.Phone,
		Speciality:       doctor.Speciality,
		Gender:           string(doctor.Gender),
		IsActive:         doctor.IsActive,
		ImageURL:         doctor.ImageURL,
		AppointmentCount: appointmentCount,
		CreatedAt:        doctor.CreatedAt,
		UpdatedAt:        doctor.UpdatedAt,
	}
}

// DoctorWithCountToResponse converts a doctor listing row to DoctorResponse DTO
func DoctorWithCountToResponse(row *entity.DoctorWithAppointmentCount) *dto.DoctorResponse {
	if row == nil {
		return nil
	}
	return DoctorToResponse(&row.Doctor, row.AppointmentCount)
}

// DoctorsWithCountToListResponse converts doctor listing rows to DoctorListResponse DTO
func DoctorsWithCountToListResponse(rows []entity.DoctorWithAppointmentCount) *dto.DoctorListResponse {
	doctors := make([]dto.DoctorResponse, len(rows))
	for i := range rows {
		doctors[i] = *DoctorWithCountToResponse(&rows[i])
	}

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}
}
