package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	orderID := "2af1c7f0-8a3d-4f71-9b6e-1d2c3e4f5a6b"

	ref := SignReference(secret, orderID)
	require.True(t, strings.HasPrefix(ref, orderID+"|"))

	got, ok := VerifyReference(secret, ref)
	assert.True(t, ok)
	assert.Equal(t, orderID, got)
}

func TestVerifyReferenceRejectsTampering(t *testing.T) {
	secret := []byte("test-secret")
	ref := SignReference(secret, "order-1")

	_, ok := VerifyReference(secret, strings.Replace(ref, "order-1", "order-2", 1))
	assert.False(t, ok)

	_, ok = VerifyReference([]byte("other-secret"), ref)
	assert.False(t, ok)

	_, ok = VerifyReference(secret, "no-separator")
	assert.False(t, ok)

	_, ok = VerifyReference(secret, "")
	assert.False(t, ok)
}
