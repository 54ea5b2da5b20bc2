package identsdk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  LoginRequest{Email: "user@example.com", Password: "secret1"},
		},
		{
			name:    "missing email",
			req:     LoginRequest{Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			req:     LoginRequest{Email: "not-an-email", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "missing password",
			req:     LoginRequest{Email: "user@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}

	t.Run("valid without date of birth", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("valid with adult date of birth", func(t *testing.T) {
		req := valid
		req.DateOfBirth = "1990-06-15"
		require.NoError(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "short"
		require.Error(t, req.Validate())
	})

	t.Run("password too long", func(t *testing.T) {
		req := valid
		req.Password = string(make([]byte, 101))
		require.Error(t, req.Validate())
	})

	t.Run("missing names", func(t *testing.T) {
		req := valid
		req.FirstName = ""
		require.Error(t, req.Validate())

		req = valid
		req.LastName = ""
		require.Error(t, req.Validate())
	})

	t.Run("date of birth in the future", func(t *testing.T) {
		req := valid
		req.DateOfBirth = time.Now().AddDate(1, 0, 0).Format(DateOfBirthLayout)
		require.Error(t, req.Validate())
	})

	t.Run("under minimum age", func(t *testing.T) {
		req := valid
		req.DateOfBirth = time.Now().AddDate(-MinimumAge+1, 0, 0).Format(DateOfBirthLayout)
		require.Error(t, req.Validate())
	})

	t.Run("malformed date of birth", func(t *testing.T) {
		req := valid
		req.DateOfBirth = "15/06/1990"
		require.Error(t, req.Validate())
	})
}

func TestAPIErrorDetail(t *testing.T) {
	base := NewAPIError(401, "unauthorised")
	require.Nil(t, base.Detail)

	withDetail := base.WithDetail("session expired")
	require.Nil(t, base.Detail, "WithDetail must not mutate the original")
	require.NotNil(t, withDetail.Detail)
	require.Contains(t, withDetail.Error(), "session expired")
}
