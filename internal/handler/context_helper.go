package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

// curriculumIDParam reads :id. Anything that is not a positive integer cannot
// name a row, so it is reported as not found.
func curriculumIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "curriculum not found")
	}
	return id, nil
}

// bindJSON decodes the request body into dst. An empty body leaves dst zero so
// the service reports the missing fields; malformed JSON or wrong field types
// are rejected as an invalid payload.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}
	return nil
}
