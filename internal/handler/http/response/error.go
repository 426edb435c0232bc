package response

import (
	"errors"
	"net/http"

	"github.com/gardops/gardops-backend-go/internal/domain/auth"
	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/domain/user"
	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Payroll domain errors
	case errors.Is(err, params.ErrParameterVersionNotFound):
		NotFound(w, "No parameter version effective at the requested date")
	case errors.Is(err, simulation.ErrSimulationNotFound):
		NotFound(w, "Simulation not found")
	case errors.Is(err, simulation.ErrUnknownAFP):
		ValidationError(w, map[string]string{"afp_name": "unknown AFP provider"})
	case errors.Is(err, simulation.ErrSnapshotPersist):
		SnapshotPersistFailed(w, "Simulation computed but the snapshot could not be saved")

	// CPQ domain errors
	case errors.Is(err, cpq.ErrQuoteNotFound):
		NotFound(w, "Quote not found")
	case errors.Is(err, cpq.ErrPositionNotFound):
		NotFound(w, "Position not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
