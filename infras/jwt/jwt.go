package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	tokenTypeBearer = "Bearer"
)

var staffRoles = []string{constant.RoleAdmin, constant.RoleReceptionist}

// Claims identify a staff member. UserID is the staff user id and Role one of the
// staff roles RBAC checks against.
type Claims struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	TokenID  string    `json:"token_id"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// JWT issues and checks staff tokens. Refreshing goes through the auth service so the
// staff row is re-read before a new pair is issued.
type JWT interface {
	GenerateTokenPair(userID, username, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) secret(tokenType TokenType) ([]byte, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.config.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.config.JWT.RefreshSecret), nil
	default:
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *Service) GenerateTokenPair(userID, username, role string) (*TokenPair, error) {
	if !slices.Contains(staffRoles, role) {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidClaim, role)
	}

	now := timezone.Now()

	accessToken, err := s.generateToken(userID, username, role, AccessToken, now, s.config.JWT.AccessExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(userID, username, role, RefreshToken, now, s.config.JWT.RefreshExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.config.JWT.AccessExpireMin * constant.MinutesToSeconds),
	}, nil
}

func (s *Service) generateToken(userID, username, role string, tokenType TokenType, issuedAt time.Time, expireMin int) (string, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return "", err
	}

	tokenID := uuid.New().String()

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		TokenID:  tokenID,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Duration(expireMin) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   userID,
			ID:        tokenID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken accepts only HS256 tokens of the given type, issued by this service for a
// known staff role.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.App.Name != "" {
		options = append(options, jwt.WithIssuer(s.config.App.Name))
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType || !slices.Contains(staffRoles, claims.Role) {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	token, found := strings.CutPrefix(authHeader, tokenTypeBearer+" ")
	if !found || token == "" {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
