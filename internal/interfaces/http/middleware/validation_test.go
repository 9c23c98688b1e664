package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bonitoviento/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type validatedInput struct {
	Name      string `json:"name" binding:"required,max=5"`
	Kind      string `json:"kind" binding:"omitempty,agenda_kind"`
	Type      string `json:"type" binding:"omitempty,movement_type"`
	Auction   string `json:"auction" binding:"omitempty,auction_type"`
	Direction string `json:"direction" binding:"omitempty,warehouse_direction"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validatedInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req))
	})
	return router
}

func postJSON(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator_CustomTags(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantField string
	}{
		{"valid closed-set values", `{"name":"ok","kind":"Sale","type":"entry","auction":"purchase","direction":"out"}`, http.StatusOK, ""},
		{"unknown agenda kind", `{"name":"ok","kind":"harvest"}`, http.StatusBadRequest, "kind"},
		{"unknown movement type", `{"name":"ok","type":"transfer"}`, http.StatusBadRequest, "type"},
		{"unknown auction type", `{"name":"ok","auction":"lease"}`, http.StatusBadRequest, "auction"},
		{"unknown direction", `{"name":"ok","direction":"sideways"}`, http.StatusBadRequest, "direction"},
		{"missing required", `{}`, http.StatusBadRequest, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, tt.body)
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantField == "" {
				return
			}

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			require.Len(t, resp.Error.Details, 1)
			assert.Equal(t, tt.wantField, resp.Error.Details[0].Field)
		})
	}
}

func TestHandleValidationError_Messages(t *testing.T) {
	router := newValidationRouter()

	w := postJSON(router, `{"name":"too long name","direction":"up"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 5 characters", messages["name"])
	assert.Equal(t, "Must be one of: in out", messages["direction"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	router := newValidationRouter()

	w := postJSON(router, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidJSON)
}
