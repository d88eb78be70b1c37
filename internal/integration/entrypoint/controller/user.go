package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/self-focus/backend/internal/application/usecase/auth"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/integration/entrypoint/dto"
)

// UserController handles the current user's profile.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(getCurrentUserUseCase *auth.GetCurrentUserUseCase) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}
