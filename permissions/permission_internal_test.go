package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"endpoints": [`},
		{name: "unknown role", data: `{"endpoints": [{"path": "/v1/rooms", "method": "GET", "permissions": ["owner"]}]}`},
		{
			name: "duplicate endpoint",
			data: `{"endpoints": [{"path": "/v1/rooms", "method": "GET"}, {"path": "/v1/rooms", "method": "get"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, parse([]byte(tt.data)))
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	adminOnly := Permission{Permissions: []string{"admin"}}

	assert.True(t, adminOnly.Allows("admin"))
	assert.False(t, adminOnly.Allows("receptionist"))
	assert.True(t, Permission{}.Allows("receptionist"))
	assert.True(t, Permission{Skip: true, Permissions: []string{"admin"}}.Allows(""))
}
