package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	staffModel "hotel/internal/domains/staff/model"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid username or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterStaffRequest) (dto.ProfileResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, staffID string) error
	Profile(ctx context.Context, staffID string) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	staffRepo  staffRepo.Staff
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	clock      timezone.Clock
}

func New(staffRepo staffRepo.Staff, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, clock timezone.Clock) Auth {
	return &serviceImpl{
		staffRepo:  staffRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		clock:      clock,
	}
}

// Register creates a staff account. Only admins reach it through the router.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterStaffRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	username := strings.ToLower(strings.TrimSpace(req.Username))

	exists, err := s.staffRepo.Exist(ctx, staffRepo.ByUsername(username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return res, fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("username already taken") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	creator, _ := ctx.Value(constant.ContextKeyUserID).(string)
	staff := req.ToModel(uuid.NewString(), hashedPassword, creator, s.clock.Now())

	if err = s.staffRepo.Insert(ctx, staff); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("username already taken") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create staff")

		return res, fmt.Errorf("failed to create staff: %w", err)
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	username := strings.ToLower(strings.TrimSpace(req.Username))
	filter := staffRepo.ByUsername(username)

	staff, err := s.staffRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		log.Warn().Str("username", username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(invalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, staff.Password); err != nil {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(invalidCredentials) // nolint:wrapcheck
	}

	if !staff.Active {
		return res, failure.Forbidden("staff account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(staff.ID, staff.Username, staff.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: s.clock.Now()}
	updatedFields := shared.TransformFields(lastLogin, staff.ID)

	if password.NeedsRehash(staff.Password) {
		if hashed, err := password.Hash(req.Password); err == nil {
			updatedFields[staffModel.FieldPassword] = hashed
		}
	}

	if err := s.staffRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("staff_id", staff.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken issues a new pair for a still-active account, picking up role changes.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	staff, err := s.get(ctx, claims.UserID)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
		}

		return res, err
	}

	if !staff.Active {
		return res, failure.Forbidden("staff account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(staff.ID, staff.Username, staff.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, staffID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, err := s.get(ctx, staffID)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, staff.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, staff.ID)

	if err = s.staffRepo.Update(ctx, updatedFields, shared.FilterByID(staff.ID, staffModel.FieldID, staffModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Profile(ctx context.Context, staffID string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, err := s.get(ctx, staffID)
	if err != nil {
		return res, err
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, staffID string) (staffModel.StaffUser, error) {
	if uuid.Validate(staffID) != nil {
		return staffModel.StaffUser{}, failure.NotFound("staff not found") // nolint:wrapcheck
	}

	staff, err := s.staffRepo.Get(ctx, shared.FilterByID(staffID, staffModel.FieldID, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return staff, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return staff, failure.NotFound("staff not found") // nolint:wrapcheck
	}

	return staff, nil
}
