package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

func TestErrorDoesNotLeakCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Wrap(errors.New("pq: relation \"curriculum\" does not exist"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching curriculum"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error fetching curriculum", body.Error)
	assert.Equal(t, appErrors.ErrInternal.Code, body.Code)
	assert.Len(t, c.Errors, 1)
}

func TestListKeepsEmptyData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, []string{}, 0)

	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCreatedIncludesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, int64(7), map[string]int64{"id": 7}, "created")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"created","id":7,"data":{"id":7}}`, w.Body.String())
}
