package service

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"canteen/canteen-svc/internal/domain"
)

type StaffInput struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone"`
	Role  domain.Role `json:"role"`
}

type StaffService struct {
	mu    sync.Mutex
	repo  StaffRepository
	now   func() time.Time
	newID func() string
}

func NewStaffService(repo StaffRepository) *StaffService {
	return &StaffService{repo: repo, now: time.Now, newID: NewID}
}

func (s *StaffService) Create(ctx context.Context, in StaffInput) (*domain.StaffMember, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		return nil, validationError("a valid email is required")
	}
	email := strings.ToLower(addr.Address)
	role := in.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		return nil, validationError("role must be staff or admin")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, storageError("load staff", err)
	}
	for _, member := range staff {
		if member.Email == email {
			return nil, ErrDuplicateStaff
		}
	}

	member := domain.StaffMember{
		ID:        s.newID(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveStaff(ctx, append(staff, member)); err != nil {
		return nil, storageError("save staff", err)
	}
	return &member, nil
}

func (s *StaffService) List(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, storageError("load staff", err)
	}
	if staff == nil {
		staff = []domain.StaffMember{}
	}
	return staff, nil
}

// Delete removes a roster entry. Orders handled by that person are not touched.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return storageError("load staff", err)
	}
	kept := make([]domain.StaffMember, 0, len(staff))
	for _, member := range staff {
		if member.ID != id {
			kept = append(kept, member)
		}
	}
	if len(kept) == len(staff) {
		return ErrStaffNotFound
	}
	if err := s.repo.SaveStaff(ctx, kept); err != nil {
		return storageError("save staff", err)
	}
	return nil
}

var _ StaffServiceInterface = (*StaffService)(nil)
