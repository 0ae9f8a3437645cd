package dto

import (
	"hotel/infras/jwt"
	staffModel "hotel/internal/domains/staff/model"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"
)

type RegisterStaffRequest struct {
	Username string `json:"username"  validate:"notblank,alphanum,max=50"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"notblank,max=100"`
	Role     string `json:"role"      validate:"required,oneof=admin receptionist"`
}

func (r *RegisterStaffRequest) ToModel(id, hashedPassword, user string, now time.Time) staffModel.StaffUser {
	return staffModel.StaffUser{
		ID:       id,
		Username: strings.ToLower(strings.TrimSpace(r.Username)),
		Password: hashedPassword,
		FullName: strings.TrimSpace(r.FullName),
		Role:     r.Role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login"`
}

func (p *ProfileResponse) FromModel(model staffModel.StaffUser) {
	p.ID = model.ID
	p.Username = model.Username
	p.FullName = model.FullName
	p.Role = model.Role

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		p.LastLogin = &lastLogin
	}
}
