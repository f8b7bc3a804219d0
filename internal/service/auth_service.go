package service

import (
	"context"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/repository"
	"stroymonitor/internal/utils"

	"github.com/google/uuid"
)

// dummyPasswordHash is verified against when the account does not exist,
// so the unknown-email and wrong-password paths take comparable time.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const entityTypeUser = "user"

// AuthService drives the login state machine and the admin-only user
// management operations. Single-factor and two-factor login are one flow
// parameterized by AuthConfig.CodeRequired.
type AuthService struct {
	users    repository.UserRepository
	sessions *SessionManager
	codes    *VerificationCodeService
	activity *ActivityLogger
	hasher   PasswordHasher
	clock    Clock
	config   AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions *SessionManager,
	codes *VerificationCodeService,
	activity *ActivityLogger,
	hasher PasswordHasher,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		codes:    codes,
		activity: activity,
		hasher:   hasher,
		clock:    clock,
		config:   config,
	}
}

type LoginInput struct {
	Email     string
	Password  string
	Code      string
	IPAddress *string
	UserAgent *string
}

type LoginResult struct {
	Token   string
	Profile Profile
}

// Login verifies credentials and, when configured, the one-time login
// code. Every failure after input validation returns
// ErrInvalidCredentials regardless of which factor was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if s.config.CodeRequired && input.Code == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		_ = s.hasher.Verify(dummyPasswordHash, input.Password)
		s.activity.Append(ctx, ActivityEntry{
			UserEmail: email,
			Action:    entity.ActionLoginFailed,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
		})
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.activity.Append(ctx, ActivityEntry{
			UserID:    &user.ID,
			UserEmail: email,
			Action:    entity.ActionLoginFailed,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
		})
		return nil, ErrInvalidCredentials
	}

	if s.config.CodeRequired {
		ok, err := s.codes.Verify(ctx, email, input.Code, entity.PurposeLogin)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.activity.Append(ctx, ActivityEntry{
				UserID:    &user.ID,
				UserEmail: email,
				Action:    entity.ActionLoginFailedInvalidCode,
				IPAddress: input.IPAddress,
				UserAgent: input.UserAgent,
			})
			return nil, ErrInvalidCredentials
		}
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.clock.Now()); err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, user.ID, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	s.activity.Append(ctx, ActivityEntry{
		UserID:    &user.ID,
		UserEmail: email,
		Action:    entity.ActionLoginSuccess,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})

	return &LoginResult{
		Token: token,
		Profile: Profile{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     entity.UserRole
}

func (s *AuthService) CreateUser(ctx context.Context, actor Profile, input CreateUserInput, ipAddress, userAgent *string) (uuid.UUID, error) {
	if input.Email == "" || input.Password == "" {
		return uuid.Nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, ErrEmailAlreadyRegistered
	}

	role := input.Role
	if role == "" {
		role = entity.UserRoleUser
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return uuid.Nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}

	s.activity.Append(ctx, ActivityEntry{
		UserID:     &actor.UserID,
		UserEmail:  actor.Email,
		Action:     entity.ActionUserCreated,
		EntityType: strPtr(entityTypeUser),
		EntityID:   strPtr(user.ID.String()),
		NewValues: map[string]any{
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})

	return user.ID, nil
}

type UpdateUserInput struct {
	FullName *string
	Role     *entity.UserRole
	IsActive *bool
}

func (s *AuthService) UpdateUser(ctx context.Context, actor Profile, userID uuid.UUID, input UpdateUserInput, ipAddress, userAgent *string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	oldValues := map[string]any{
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
		"is_active": user.IsActive,
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.activity.Append(ctx, ActivityEntry{
		UserID:     &actor.UserID,
		UserEmail:  actor.Email,
		Action:     entity.ActionUserUpdated,
		EntityType: strPtr(entityTypeUser),
		EntityID:   strPtr(user.ID.String()),
		OldValues:  oldValues,
		NewValues: map[string]any{
			"full_name": user.FullName,
			"role":      user.Role,
			"is_active": user.IsActive,
		},
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})

	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor Profile, userID uuid.UUID, newPassword string, ipAddress, userAgent *string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	s.activity.Append(ctx, ActivityEntry{
		UserID:     &actor.UserID,
		UserEmail:  actor.Email,
		Action:     entity.ActionPasswordChanged,
		EntityType: strPtr(entityTypeUser),
		EntityID:   strPtr(user.ID.String()),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})

	return nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

func strPtr(value string) *string {
	return &value
}
