package jwt_test

import (
	"hotel/config"
	"hotel/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	service := jwt.New(newConfig())

	pair, err := service.GenerateTokenPair("staff-1", "frontdesk", "receptionist")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "staff-1", claims.UserID)
	assert.Equal(t, "frontdesk", claims.Username)
	assert.Equal(t, "receptionist", claims.Role)
	assert.Equal(t, jwt.AccessToken, claims.Type)
}

func TestValidateToken_WrongType(t *testing.T) {
	service := jwt.New(newConfig())

	pair, err := service.GenerateTokenPair("staff-1", "frontdesk", "admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = service.ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := newConfig()
	cfg.JWT.AccessExpireMin = -1

	service := jwt.New(cfg)

	pair, err := service.GenerateTokenPair("staff-1", "frontdesk", "admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestGenerateTokenPair_UnknownRole(t *testing.T) {
	service := jwt.New(newConfig())

	_, err := service.GenerateTokenPair("staff-1", "frontdesk", "manager")
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestValidateToken_OtherIssuer(t *testing.T) {
	other := newConfig()
	other.App.Name = "another-property"

	pair, err := jwt.New(other).GenerateTokenPair("staff-1", "frontdesk", "admin")
	require.NoError(t, err)

	_, err = jwt.New(newConfig()).ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Refresh(t *testing.T) {
	service := jwt.New(newConfig())

	pair, err := service.GenerateTokenPair("staff-1", "frontdesk", "admin")
	require.NoError(t, err)

	claims, err := service.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, claims.Type)
	assert.Equal(t, "staff-1", claims.Subject)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty header", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "bearer without token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
