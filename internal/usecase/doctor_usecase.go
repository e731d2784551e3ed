package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/delivery/http/middleware"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/infrastructure/cache"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/avatar"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Validation, conflict and not-found errors are returned as is. Any other
// failure is logged and replaced by the generic error of the operation.
var (
	ErrDoctorNameEmailRequired = errors.New("name and email required")
	ErrDoctorInvalidGender     = errors.New("gender must be MALE or FEMALE")
	ErrDoctorIsActiveRequired  = errors.New("is_active required")
	ErrDoctorEmailExists       = errors.New("doctor with this email already exists")
	ErrDoctorNotFound          = errors.New("doctor not found")

	ErrFetchDoctors          = errors.New("failed to fetch doctors")
	ErrFetchAvailableDoctors = errors.New("failed to fetch available doctors")
	ErrFetchDoctor           = errors.New("failed to fetch doctor")
	ErrCreateDoctor          = errors.New("failed to create doctor")
	ErrUpdateDoctor          = errors.New("failed to update doctor")
)

const auditEntityDoctor = "doctor"

// Views that show doctor data and go stale on every doctor write.
var doctorViews = []string{cache.AdminViewPath, cache.DashboardViewPath}

type DoctorUsecase interface {
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	viewCache    cache.ViewCache
}

func NewDoctorUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	viewCache cache.ViewCache,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		transactor:   transactor,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		viewCache:    viewCache,
	}
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllWithAppointmentCount(ctx, repository.DoctorListFilter{
		OrderBy: repository.DoctorOrderNewestFirst,
	})
	if err != nil {
		u.log.Errorf("Error fetching doctors: %+v", err)
		return nil, ErrFetchDoctors
	}

	return converter.DoctorsWithCountToListResponse(doctors), nil
}

func (u *doctorUsecase) GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllWithAppointmentCount(ctx, repository.DoctorListFilter{
		ActiveOnly: true,
		OrderBy:    repository.DoctorOrderNameAsc,
	})
	if err != nil {
		u.log.Errorf("Error fetching available doctors: %+v", err)
		return nil, ErrFetchAvailableDoctors
	}

	return converter.DoctorsWithCountToListResponse(doctors), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindWithAppointmentCount(ctx, doctorID)
	if err != nil {
		u.log.Errorf("Error fetching doctor %s: %+v", doctorID, err)
		return nil, ErrFetchDoctor
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorWithCountToResponse(doctor), nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	gender, err := validateDoctorFields(req.Name, req.Email, req.Gender)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	doctor := &entity.Doctor{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Speciality: req.Speciality,
		Gender:     gender,
		IsActive:   isActive,
		ImageURL:   avatar.Generate(req.Name, string(gender)),
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.doctorRepo.FindByEmail(ctx, doctor.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDoctorEmailExists
		}

		// the unique index still decides when two creates race past the lookup
		if err := u.doctorRepo.Create(ctx, doctor); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return ErrDoctorEmailExists
			}
			return err
		}

		actor, _ := middleware.GetIdentityFromContext(ctx)
		return u.auditService.LogCreate(ctx, actor, entity.AuditActionDoctorCreate, auditEntityDoctor, doctor.ID.String(), converter.DoctorToResponse(doctor, 0))
	})
	if err != nil {
		if errors.Is(err, ErrDoctorEmailExists) {
			u.log.Warnf("Error creating doctor: email %q already exists", doctor.Email)
			return nil, ErrDoctorEmailExists
		}
		u.log.Errorf("Error creating doctor: %+v", err)
		return nil, ErrCreateDoctor
	}

	u.invalidateDoctorViews(ctx)

	return converter.DoctorToResponse(doctor, 0), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	gender, err := validateDoctorFields(req.Name, req.Email, req.Gender)
	if err != nil {
		return nil, err
	}
	if req.IsActive == nil {
		return nil, ErrDoctorIsActiveRequired
	}

	var updated *entity.DoctorWithAppointmentCount
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		oldValue := converter.DoctorToResponse(doctor, 0)

		// the doctor's own email must not count as a conflict
		if req.Email != doctor.Email {
			existing, err := u.doctorRepo.FindByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrDoctorEmailExists
			}
		}

		doctor.Name = req.Name
		doctor.Email = req.Email
		doctor.Phone = req.Phone
		doctor.Speciality = req.Speciality
		doctor.Gender = gender
		doctor.IsActive = *req.IsActive

		if err := u.doctorRepo.Update(ctx, doctor); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return ErrDoctorEmailExists
			}
			return err
		}

		updated, err = u.doctorRepo.FindWithAppointmentCount(ctx, doctorID)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrDoctorNotFound
		}

		actor, _ := middleware.GetIdentityFromContext(ctx)
		return u.auditService.LogUpdate(ctx, actor, entity.AuditActionDoctorUpdate, auditEntityDoctor, doctorID.String(), oldValue, converter.DoctorWithCountToResponse(updated))
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotFound):
			return nil, ErrDoctorNotFound
		case errors.Is(err, ErrDoctorEmailExists):
			u.log.Warnf("Error updating doctor %s: email %q already exists", doctorID, req.Email)
			return nil, ErrDoctorEmailExists
		}
		u.log.Errorf("Error updating doctor %s: %+v", doctorID, err)
		return nil, ErrUpdateDoctor
	}

	u.invalidateDoctorViews(ctx)

	return converter.DoctorWithCountToResponse(updated), nil
}

// invalidateDoctorViews marks cached pages stale. The write is already
// committed, so a cache failure is only logged.
func (u *doctorUsecase) invalidateDoctorViews(ctx context.Context) {
	if err := u.viewCache.Invalidate(ctx, doctorViews...); err != nil {
		u.log.Warnf("Failed to invalidate doctor views: %+v", err)
	}
}

func validateDoctorFields(name, email, gender string) (entity.Gender, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return "", ErrDoctorNameEmailRequired
	}

	g := entity.Gender(gender)
	if !g.IsValid() {
		return "", ErrDoctorInvalidGender
	}
	return g, nil
}
