package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifier_Verify(t *testing.T) {
	v, err := NewStaticVerifier("xrrahul", "xr123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		password      string
		expectedError error
	}{
		{name: "exact", username: "xrrahul", password: "xr123"},
		{name: "username case and spaces", username: "  XRRahul ", password: "xr123"},
		{name: "password spaces", username: "xrrahul", password: " xr123\t"},
		{name: "wrong password", username: "xrrahul", password: "XR123", expectedError: ErrInvalidCredentials},
		{name: "wrong user", username: "admin", password: "xr123", expectedError: ErrInvalidCredentials},
		{name: "empty", expectedError: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(context.Background(), tt.username, tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStaticVerifier_FromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewStaticVerifierFromHash("Admin", hash)
	assert.NoError(t, v.Verify(context.Background(), "admin", "secret"))
	assert.ErrorIs(t, v.Verify(context.Background(), "admin", "nope"), ErrInvalidCredentials)
}

func TestStaticVerifier_CancelledContext(t *testing.T) {
	v := NewStaticVerifierFromHash("admin", []byte("unused"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, v.Verify(ctx, "admin", "x"), context.Canceled)
}
