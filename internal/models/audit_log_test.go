package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_Metadata(t *testing.T) {
	log := &AuditLog{}

	assert.Equal(t, "fallback", log.GetMetadata("reason", "fallback"))

	log.SetMetadata("reason", "wrong password")
	log.SetMetadata("attempt", 2)

	assert.Equal(t, "wrong password", log.GetMetadata("reason", ""))
	assert.Equal(t, 2, log.GetMetadata("attempt", 0))
	assert.Equal(t, "default", log.GetMetadata("missing", "default"))
}

func TestJSONBMap_ValueAndScan(t *testing.T) {
	empty, err := JSONBMap{}.Value()
	require.NoError(t, err)
	assert.Nil(t, empty)

	value, err := JSONBMap{"email": "a@example.com"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"email":"a@example.com"}`, value)

	var scanned JSONBMap
	require.NoError(t, scanned.Scan([]byte(`{"email":"a@example.com"}`)))
	assert.Equal(t, "a@example.com", scanned["email"])

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestAuditLog_String(t *testing.T) {
	userID := uuid.New()
	log := &AuditLog{
		UserID:     &userID,
		Action:     AuditActionFailedLogin,
		Resource:   AuditResourceUser,
		ResourceID: userID.String(),
		IPAddress:  "192.168.1.1",
	}

	str := log.String()
	assert.Contains(t, str, "failed_login")
	assert.Contains(t, str, "user/"+userID.String())
	assert.Contains(t, str, "192.168.1.1")

	log.UserID = nil
	assert.Contains(t, log.String(), "anonymous")
}
