package dto

import (
	"encoding/json"
	"time"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"omitempty,len=6,numeric"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type VerifyResponse struct {
	User ProfileResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SendCodeRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=login password_reset"`
}

type VerifyCodeRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=login password_reset"`
}

type VerifyCodeResponse struct {
	Message string `json:"message"`
	Valid   bool   `json:"valid"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"omitempty"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type CreateUserResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type ActivityLogResponse struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Action     string    `json:"action"`
	EntityType *string   `json:"entity_type,omitempty"`
	EntityID   *string   `json:"entity_id,omitempty"`
	OldValues  any       `json:"old_values,omitempty"`
	NewValues  any       `json:"new_values,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ActivityLogsResponse struct {
	Logs []ActivityLogResponse `json:"logs"`
}

func ProfileResponseFromService(profile *service.Profile) ProfileResponse {
	return ProfileResponse{
		ID:    profile.UserID.String(),
		Email: profile.Email,
		Name:  profile.FullName,
		Role:  string(profile.Role),
	}
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

func ActivityLogResponseFromEntity(log *entity.ActivityLog) ActivityLogResponse {
	response := ActivityLogResponse{
		ID:         log.ID.String(),
		UserEmail:  log.UserEmail,
		Action:     string(log.Action),
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		IPAddress:  log.IPAddress,
		CreatedAt:  log.CreatedAt,
	}
	if log.UserID != nil {
		id := log.UserID.String()
		response.UserID = &id
	}
	if len(log.OldValues) > 0 {
		response.OldValues = json.RawMessage(log.OldValues)
	}
	if len(log.NewValues) > 0 {
		response.NewValues = json.RawMessage(log.NewValues)
	}
	return response
}

func ActivityLogResponsesFromEntities(logs []entity.ActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ActivityLogResponseFromEntity(&logs[i]))
	}
	return responses
}
