package dto

type AdminStats struct {
	TotalDoctors      int   `json:"total_doctors"`
	ActiveDoctors     int   `json:"active_doctors"`
	TotalAppointments int64 `json:"total_appointments"`
}

// AdminDashboardResponse is the payload behind the admin page.
type AdminDashboardResponse struct {
	Stats          AdminStats         `json:"stats"`
	Doctors        []DoctorResponse   `json:"doctors"`
	RecentActivity []AuditLogResponse `json:"recent_activity"`
}

type UserDashboardResponse struct {
	Email            string           `json:"email,omitempty"`
	AvailableDoctors []DoctorResponse `json:"available_doctors"`
	TotalAvailable   int              `json:"total_available"`
}
