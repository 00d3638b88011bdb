package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/lms/internal/middleware"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/auth"
)

// requireIdentity returns the authenticated caller or writes a 401.
func requireIdentity(ctx *gin.Context) (*auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return identity, true
}
