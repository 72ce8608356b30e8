package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
)

func TestDecodeOptional_BodylessRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/leave/requests/request-1/reject", nil)

	var req leave.RejectRequestRequest
	require.NoError(t, decodeOptional(r, &req))
	assert.Nil(t, req.Reason)
}

func TestDecodeOptional_WithBody(t *testing.T) {
	body := strings.NewReader(`{"reason":"coverage gap in the team"}`)
	r := httptest.NewRequest("POST", "/api/v1/leave/requests/request-1/reject", body)

	var req leave.RejectRequestRequest
	require.NoError(t, decodeOptional(r, &req))
	require.NotNil(t, req.Reason)
	assert.Equal(t, "coverage gap in the team", *req.Reason)
}

func TestDecodeOptional_MalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/leave/requests/request-1/reject", strings.NewReader("{"))

	var req leave.RejectRequestRequest
	assert.Error(t, decodeOptional(r, &req))
}
