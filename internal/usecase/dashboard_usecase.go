package usecase

import (
	"context"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

const recentActivityLimit = 10

type DashboardUsecase interface {
	GetAdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	GetUserDashboard(ctx context.Context, identity *entity.Identity) (*dto.UserDashboardResponse, error)
}

type dashboardUsecase struct {
	log             *logrus.Logger
	doctorUsecase   DoctorUsecase
	auditLogUsecase AuditLogUsecase
	viewCache       cache.ViewCache
}

func NewDashboardUsecase(
	log *logrus.Logger,
	doctorUsecase DoctorUsecase,
	auditLogUsecase AuditLogUsecase,
	viewCache cache.ViewCache,
) DashboardUsecase {
	return &dashboardUsecase{
		log:             log,
		doctorUsecase:   doctorUsecase,
		auditLogUsecase: auditLogUsecase,
		viewCache:       viewCache,
	}
}

// GetAdminDashboard serves the admin page from the view cache, rebuilding it
// after a doctor write invalidated it.
func (u *dashboardUsecase) GetAdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	var cached dto.AdminDashboardResponse
	if u.readView(ctx, cache.AdminViewPath, &cached) {
		return &cached, nil
	}
	generation, cacheable := u.viewGeneration(ctx, cache.AdminViewPath)

	var (
		doctors  *dto.DoctorListResponse
		activity *dto.AuditLogListResponse
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		doctors, err = u.doctorUsecase.GetAllDoctors(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		activity, err = u.auditLogUsecase.GetAllAuditLogs(ctx, recentActivityLimit)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	view := &dto.AdminDashboardResponse{
		Stats:          adminStats(doctors.Doctors),
		Doctors:        doctors.Doctors,
		RecentActivity: activity.Logs,
	}

	if cacheable {
		u.writeView(ctx, cache.AdminViewPath, generation, view)
	}

	return view, nil
}

// GetUserDashboard returns the available doctors for identity. Only the
// doctor list is cached; it is the same for every user.
func (u *dashboardUsecase) GetUserDashboard(ctx context.Context, identity *entity.Identity) (*dto.UserDashboardResponse, error) {
	var available dto.DoctorListResponse
	if !u.readView(ctx, cache.DashboardViewPath, &available) {
		generation, cacheable := u.viewGeneration(ctx, cache.DashboardViewPath)
		fresh, err := u.doctorUsecase.GetAvailableDoctors(ctx)
		if err != nil {
			return nil, err
		}
		available = *fresh
		if cacheable {
			u.writeView(ctx, cache.DashboardViewPath, generation, fresh)
		}
	}

	email, _ := identity.PrimaryEmail()

	return &dto.UserDashboardResponse{
		Email:            email,
		AvailableDoctors: available.Doctors,
		TotalAvailable:   available.Total,
	}, nil
}

// readView treats a cache error as a miss so the page still renders from the store.
func (u *dashboardUsecase) readView(ctx context.Context, path string, dest interface{}) bool {
	found, err := u.viewCache.Get(ctx, path, dest)
	if err != nil {
		u.log.Warnf("Failed to read cached view %s: %+v", path, err)
		return false
	}
	return found
}

// viewGeneration must be read before the store so that a doctor write
// committed during the rebuild keeps the stale view out of the cache.
func (u *dashboardUsecase) viewGeneration(ctx context.Context, path string) (int64, bool) {
	generation, err := u.viewCache.Generation(ctx, path)
	if err != nil {
		u.log.Warnf("Failed to read generation of view %s: %+v", path, err)
		return 0, false
	}
	return generation, true
}

func (u *dashboardUsecase) writeView(ctx context.Context, path string, generation int64, view interface{}) {
	stored, err := u.viewCache.Set(ctx, path, generation, view)
	if err != nil {
		u.log.Warnf("Failed to cache view %s: %+v", path, err)
		return
	}
	if !stored {
		u.log.Debugf("View %s was invalidated while rebuilding, not cached", path)
	}
}

func adminStats(doctors []dto.DoctorResponse) dto.AdminStats {
	stats := dto.AdminStats{TotalDoctors: len(doctors)}
	for _, doctor := range doctors {
		if doctor.IsActive {
			stats.ActiveDoctors++
		}
		stats.TotalAppointments += doctor.AppointmentCount
	}
	return stats
}
