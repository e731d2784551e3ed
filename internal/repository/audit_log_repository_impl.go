package repository

import (
	"context"
	"errors"

	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"
	"clinic-admin/internal/infrastructure/database"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return database.Conn(ctx, r.db).Create(log).Error
}

// FindAll returns the newest entries first. A non-positive limit returns all.
func (r *auditLogRepository) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	query := database.Conn(ctx, r.db).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	logs := []entity.AuditLog{}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := database.Conn(ctx, r.db).First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
