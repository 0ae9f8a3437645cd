package password_test

import (
	"hotel/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// seededAdminHash is the hash shipped in the staff_users migration for "admin12345".
const seededAdminHash = "$2b$10$A8AcvIRYC8DlRdgp18u2muFHzYiUDTa2DBBckyJRnP2ekFcH9eI.O"

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "valid password", password: "frontdesk-2024"},
		{name: "unicode password", password: "пароль123"},
		{name: "72 bytes", password: strings.Repeat("a", 72)},
		{name: "empty password", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "longer than 72 bytes", password: strings.Repeat("a", 100), expectedErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	validHash, err := password.Hash("testPassword123")
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{name: "valid password and hash", password: "testPassword123", hash: validHash},
		{name: "seeded admin", password: "admin12345", hash: seededAdminHash},
		{name: "wrong password", password: "wrongPassword", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "testPassword123", hash: "", expectedErr: password.ErrInvalidPassword},
		{name: "invalid hash format", password: "testPassword123", hash: "invalid_hash", expectedErr: password.ErrVerifyingPassword},
		{name: "truncated hash", password: "testPassword123", hash: validHash[:10], expectedErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("samePassword")
	require.NoError(t, err)

	second, err := password.Hash("samePassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("samePassword", first))
	assert.NoError(t, password.Verify("samePassword", second))
}

func TestNeedsRehash(t *testing.T) {
	current, err := password.Hash("frontdesk-2024")
	require.NoError(t, err)

	cheap, err := bcrypt.GenerateFromPassword([]byte("frontdesk-2024"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(current))
	assert.False(t, password.NeedsRehash(seededAdminHash))
	assert.True(t, password.NeedsRehash(string(cheap)))
	assert.True(t, password.NeedsRehash("not-a-hash"))
}
