package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{Email: "test@example.com", Name: "Jane Doe", PasswordHash: "hash"},
			wantErr: false,
		},
		{
			name:    "invalid email",
			user:    User{Email: "invalid-email", Name: "Jane Doe", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "invalid email format",
		},
		{
			name:    "empty email",
			user:    User{Email: "", Name: "Jane Doe", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "blank name",
			user:    User{Email: "test@example.com", Name: "   ", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "missing password hash",
			user:    User{Email: "test@example.com", Name: "Jane Doe"},
			wantErr: true,
			errMsg:  "password hash is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{Email: "test@example.com", Name: "Jane Doe", PasswordHash: "hash"}

	require.NoError(t, user.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
