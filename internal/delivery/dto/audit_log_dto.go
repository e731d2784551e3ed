package dto

import (
	"clinic-admin/internal/domain/entity"
	"time"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64       `json:"id"`
	ActorID    string      `json:"actor_id,omitempty"`
	ActorEmail string      `json:"actor_email,omitempty"`
	Action     string      `json:"action"`
	Metadata   entity.JSON `json:"metadata"`
	CreatedAt  time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
