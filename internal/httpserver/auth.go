package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"`
}

func registerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authsvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		u, err := deps.AuthSvc.Register(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func loginHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		u, access, refresh, err := deps.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		// Fold any guest cart carried by this request into the account's
		// cart. Login itself already succeeded, so merge trouble is logged
		// rather than surfaced.
		engine := cart.New(deps.CartRepo, deps.ProductSvc, newCookieStore(c), logger)
		if err := engine.SetSession(c.Request.Context(), u.ID); err != nil {
			logger.Printf("login: merge guest cart for %s: %v", u.ID, err)
		}

		c.JSON(http.StatusOK, loginResponse{
			User:         *u,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    deps.AuthSvc.AccessTTLSeconds(),
		})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		c.JSON(http.StatusOK, u)
	}
}
