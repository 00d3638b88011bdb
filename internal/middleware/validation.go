package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/pkg/logger"
)

// BindJSON binds the request body into obj. On failure it writes a 400 with
// the field errors and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.HandleValidationError(err)
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Rejected request body")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// ReadRawBody reads the request body without decoding it, for services
// that decode only after their existence and ownership checks. A read
// failure writes a 400 and returns false.
func ReadRawBody(c *gin.Context) (dto.RawBody, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	data, err := c.GetRawData()
	if err != nil {
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to read request body")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "request body could not be read")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return dto.RawBody(data), true
}

// ParseUUIDParam reads a path parameter as a UUID. On failure it writes a 400
// and returns false.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).WithField(name)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// ParseUUIDParamOrNotFound reads a path parameter as a UUID for lookups
// where an id that cannot exist is reported as notFound.
func ParseUUIDParamOrNotFound(c *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		HandleAPIError(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}
