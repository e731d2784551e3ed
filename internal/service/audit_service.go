package service

import (
	"context"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) write(ctx context.Context, actor *entity.Identity, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}
	if actor != nil {
		auditLog.ActorID = actor.UserID
		auditLog.ActorEmail, _ = actor.PrimaryEmail()
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
