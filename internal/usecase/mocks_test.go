package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/infrastructure/cache"
	"clinic-admin/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// --- passthroughTransactor ---
var _ repository.Transactor = (*passthroughTransactor)(nil)

type passthroughTransactor struct {
	calls int
}

func (t *passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// --- memoryDoctorRepository ---
// Compile-time check to ensure memoryDoctorRepository implements DoctorRepository
var _ repository.DoctorRepository = (*memoryDoctorRepository)(nil)

// memoryDoctorRepository keeps doctors in memory and enforces the unique
// email index the way the database does. The *Err fields inject failures.
type memoryDoctorRepository struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]entity.Doctor
	appointments map[uuid.UUID]int64
	clock        time.Time

	CreateErr   error
	FindByIDErr error
	FindAllErr  error
	UpdateErr   error

	// FindByEmailFunc replaces the default lookup when set.
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.Doctor, error)
	FindByEmailCalls int
	CreateCalls      int
	UpdateCalls      int
}

func newMemoryDoctorRepository() *memoryDoctorRepository {
	return &memoryDoctorRepository{
		doctors:      make(map[uuid.UUID]entity.Doctor),
		appointments: make(map[uuid.UUID]int64),
		clock:        time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memoryDoctorRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, d := range r.doctors {
		if d.Email == email && id != except {
			return true
		}
	}
	return false
}

func (r *memoryDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if r.emailTaken(doctor.Email, uuid.Nil) {
		return repository.ErrDuplicateEmail
	}

	doctor.ID = uuid.New()
	r.clock = r.clock.Add(time.Minute)
	doctor.CreatedAt = r.clock
	doctor.UpdatedAt = r.clock
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *memoryDoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindByIDErr != nil {
		return nil, r.FindByIDErr
	}
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memoryDoctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	r.mu.Lock()
	r.FindByEmailCalls++
	lookup := r.FindByEmailFunc
	r.mu.Unlock()

	if lookup != nil {
		return lookup(ctx, email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.Email == email {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryDoctorRepository) FindWithAppointmentCount(ctx context.Context, id uuid.UUID) (*entity.DoctorWithAppointmentCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindByIDErr != nil {
		return nil, r.FindByIDErr
	}
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &entity.DoctorWithAppointmentCount{Doctor: d, AppointmentCount: r.appointments[id]}, nil
}

func (r *memoryDoctorRepository) FindAllWithAppointmentCount(ctx context.Context, filter repository.DoctorListFilter) ([]entity.DoctorWithAppointmentCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindAllErr != nil {
		return nil, r.FindAllErr
	}

	rows := []entity.DoctorWithAppointmentCount{}
	for id, d := range r.doctors {
		if filter.ActiveOnly && !d.IsActive {
			continue
		}
		rows = append(rows, entity.DoctorWithAppointmentCount{Doctor: d, AppointmentCount: r.appointments[id]})
	}

	switch filter.OrderBy {
	case repository.DoctorOrderNameAsc:
		sort.Slice(rows, func(i, j int) bool { return strings.Compare(rows[i].Name, rows[j].Name) < 0 })
	default:
		sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	}
	return rows, nil
}

func (r *memoryDoctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UpdateCalls++

	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	stored, ok := r.doctors[doctor.ID]
	if !ok {
		return errors.New("update of unknown doctor")
	}
	if r.emailTaken(doctor.Email, doctor.ID) {
		return repository.ErrDuplicateEmail
	}

	// only the mutable columns are written
	stored.Name = doctor.Name
	stored.Email = doctor.Email
	stored.Phone = doctor.Phone
	stored.Speciality = doctor.Speciality
	stored.Gender = doctor.Gender
	stored.IsActive = doctor.IsActive
	r.clock = r.clock.Add(time.Minute)
	stored.UpdatedAt = r.clock
	r.doctors[doctor.ID] = stored
	return nil
}

func (r *memoryDoctorRepository) stored(id uuid.UUID) entity.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctors[id]
}

func (r *memoryDoctorRepository) countByEmail(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.doctors {
		if d.Email == email {
			n++
		}
	}
	return n
}

// --- MockAuditService ---
var _ service.AuditService = (*MockAuditService)(nil)

type MockAuditService struct {
	LogCreateFunc func(ctx context.Context, actor *entity.Identity, action, entityName, entityID string, newValue interface{}) error
	LogUpdateFunc func(ctx context.Context, actor *entity.Identity, action, entityName, entityID string, oldValue, newValue interface{}) error

	Actions []string
	Actors  []*entity.Identity
}

func (m *MockAuditService) LogCreate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	m.Actors = append(m.Actors, actor)
	if m.LogCreateFunc != nil {
		return m.LogCreateFunc(ctx, actor, action, entityName, entityID, newValue)
	}
	return nil
}

func (m *MockAuditService) LogUpdate(ctx context.Context, actor *entity.Identity, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	m.Actors = append(m.Actors, actor)
	if m.LogUpdateFunc != nil {
		return m.LogUpdateFunc(ctx, actor, action, entityName, entityID, oldValue, newValue)
	}
	return nil
}

// --- MockViewCache ---
var _ cache.ViewCache = (*MockViewCache)(nil)

type MockViewCache struct {
	GetFunc        func(ctx context.Context, path string, dest interface{}) (bool, error)
	GenerationFunc func(ctx context.Context, path string) (int64, error)
	SetFunc        func(ctx context.Context, path string, generation int64, value interface{}) (bool, error)
	InvalidateFunc func(ctx context.Context, paths ...string) error

	Invalidated [][]string
	SetPaths    []string
}

func (m *MockViewCache) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, dest)
	}
	return false, nil
}

func (m *MockViewCache) Generation(ctx context.Context, path string) (int64, error) {
	if m.GenerationFunc != nil {
		return m.GenerationFunc(ctx, path)
	}
	return 0, nil
}

func (m *MockViewCache) Set(ctx context.Context, path string, generation int64, value interface{}) (bool, error) {
	m.SetPaths = append(m.SetPaths, path)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, path, generation, value)
	}
	return true, nil
}

func (m *MockViewCache) Invalidate(ctx context.Context, paths ...string) error {
	m.Invalidated = append(m.Invalidated, paths)
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, paths...)
	}
	return nil
}

// --- MockAuditLogRepository ---
var _ repository.AuditLogRepository = (*MockAuditLogRepository)(nil)

type MockAuditLogRepository struct {
	FindAllFunc  func(ctx context.Context, limit int) ([]entity.AuditLog, error)
	FindByIDFunc func(ctx context.Context, id int64) (*entity.AuditLog, error)
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return errors.New("Create not implemented in mock")
}

func (m *MockAuditLogRepository) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit)
	}
	return []entity.AuditLog{}, nil
}

func (m *MockAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}
