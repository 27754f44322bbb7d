package handlers

import (
	"errors"
	"net/http"

	request "clinica_xpto/internal/adapter/http/dto/request"
	"clinica_xpto/pkg"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidRequest   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errValidationFailed = pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Required fields are missing or invalid", http.StatusBadRequest)
	errInternal         = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

// bindJSON binds the body and writes the error response when it fails.
// Binding tag failures are reported field by field as VALIDATION_FAILED.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		writeError(c, validationFailed(request.FieldErrors(verrs)))
		return false
	}
	writeError(c, errInvalidRequest)
	return false
}

func validationFailed(fields map[string]string) *pkg.AppError {
	return errValidationFailed.WithDetails(map[string]any{"fields": fields})
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
