package service

import (
	"errors"
	"fmt"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/pkg/jwt"
	"github.com/YasinKhilji/ims-project/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	Register(req *RegisterRequest) (*model.User, error)
	Approve(userID, adminID uuid.UUID) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type RegisterRequest struct {
	Username        string     `json:"username" validate:"required,min=3"`
	Email           string     `json:"email" validate:"required,email"`
	FullName        string     `json:"full_name" validate:"required"`
	Password        string     `json:"password" validate:"required,min=6"`
	ConfirmPassword string     `json:"confirm_password" validate:"required"`
	Role            model.Role `json:"role" validate:"required"`
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	notifier NotificationService
	audit    repository.AuditRepository
	tokens   *jwt.Manager
	log      *zap.Logger
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, notifier NotificationService, audit repository.AuditRepository, tokens *jwt.Manager, log *zap.Logger) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		notifier: notifier,
		audit:    audit,
		tokens:   tokens,
		log:      log,
	}
}

// Login authenticates an active user. Unknown username, wrong password and
// inactive account all collapse into the same error so callers cannot
// enumerate accounts.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperr.ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: token generation: %v", apperr.ErrBackend, err)
	}

	s.recordAudit("users", "login", user.ID, user.Username)
	s.log.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Logout(userID uuid.UUID) error {
	s.recordAudit("users", "logout", userID, "")
	return nil
}

// Register creates an inactive account restricted to non-privileged roles and
// notifies an Admin for approval. The user insert and the notification share
// one transaction.
func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if fieldErr := validator.Struct(req); fieldErr != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, fieldErr)
	}

	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperr.ErrValidation)
	}

	if !req.Role.In(model.RegistrableRoles...) {
		return nil, fmt.Errorf("%w: role %q cannot self-register", apperr.ErrValidation, req.Role)
	}

	existing, err := s.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username or email already exists", apperr.ErrValidation)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: false, // Pending admin approval
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: password hashing: %v", apperr.ErrBackend, err)
	}

	var queued *model.Notification

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		var admin model.User
		if err := tx.Where("role = ?", model.RoleAdmin).Order("created_at ASC").First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No admin to approve yet; the account stays pending.
				return nil
			}
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		message := fmt.Sprintf("New %s registration awaiting approval: %s", user.Role, user.Username)
		related := &model.RelatedEntity{Type: "user", ID: user.ID}
		n, err := s.notifier.NotifyTx(tx, admin.ID, message, model.NotifSystemAlert, related)
		if err != nil {
			return err
		}
		queued = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	if queued != nil {
		s.notifier.Push(queued)
	}
	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	return user, nil
}

// Approve flips the active flag and notifies the approved user. The caller
// is gated to Admin at the route level.
func (s *authService) Approve(userID, adminID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	var queued *model.Notification

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}

		n, err := s.notifier.NotifyTx(tx, user.ID, "Your account has been approved! You can now login.", model.NotifSystemAlert, nil)
		if err != nil {
			return err
		}
		queued = n
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Push(queued)
	s.recordAudit("users", "approve", adminID, user.Username)
	s.log.Info("user approved", zap.String("user_id", user.ID.String()), zap.String("approved_by", adminID.String()))

	return nil
}

func (s *authService) recordAudit(entity, action string, by uuid.UUID, detail string) {
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
