package service

import (
	"errors"
	"fmt"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService is the Admin-facing account management surface; self-service
// registration lives in AuthService.
type UserService interface {
	Create(req *CreateUserRequest, creatorID uuid.UUID) (*model.User, error)
	Update(userID uuid.UUID, req *UpdateUserRequest, updaterID uuid.UUID) (*model.User, error)
	Delete(userID uuid.UUID, deleterID uuid.UUID) error
	GetAll() ([]model.UserResponse, error)
	GetByID(id uuid.UUID) (*model.UserResponse, error)
	GetPending() ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3"`
	Email    string     `json:"email" validate:"required,email"`
	FullName string     `json:"full_name" validate:"required"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"required"`
	IsActive bool       `json:"is_active"`
}

type UpdateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3"`
	Email    string     `json:"email" validate:"required,email"`
	FullName string     `json:"full_name"`
	Password *string    `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	Role     model.Role `json:"role" validate:"required"`
	IsActive *bool      `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	audit    repository.AuditRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, audit repository.AuditRepository, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, audit: audit, log: log}
}

func (s *userService) Create(req *CreateUserRequest, creatorID uuid.UUID) (*model.User, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, req.Role)
	}

	existing, err := s.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateUser
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	}
	user.CreatedBy = creatorID.String()
	user.UpdatedBy = creatorID.String()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: password hashing: %v", apperr.ErrBackend, err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("users", "create", creatorID, user.Username)
	return user, nil
}

func (s *userService) Update(userID uuid.UUID, req *UpdateUserRequest, updaterID uuid.UUID) (*model.User, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, req.Role)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	if req.Username != user.Username || req.Email != user.Email {
		existing, err := s.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperr.ErrDuplicateUser
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("%w: password hashing: %v", apperr.ErrBackend, err)
		}
	}
	user.UpdatedBy = updaterID.String()

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("users", "update", updaterID, user.Username)
	return user, nil
}

func (s *userService) Delete(userID uuid.UUID, deleterID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("users", "delete", deleterID, user.Username)
	return nil
}

func (s *userService) GetAll() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return toResponses(users), nil
}

func (s *userService) GetByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetPending() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindPending()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return toResponses(users), nil
}

func toResponses(users []model.User) []model.UserResponse {
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses
}

func (s *userService) recordAudit(entity, action string, by uuid.UUID, detail string) {
	performer := by
	entry := &model.AuditLog{
		Entity:      entity,
		Action:      action,
		Detail:      detail,
		ChangedByID: &performer,
	}
	if err := s.audit.Record(entry); err != nil {
		s.log.Warn("audit write failed", zap.String("entity", entity), zap.String("action", action), zap.Error(err))
	}
}
