package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeValidationFailed, "mobile must be at most 20 characters").WithField("mobile"))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])

	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "VAL_001", errObj["code"])
	assert.Equal(t, "ERROR", errObj["severity"])
	assert.Equal(t, "mobile", errObj["field"])
	assert.NotContains(t, errObj, "details")
}
