package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	suppliersvc "storefront/internal/service/supplier"
	usersvc "storefront/internal/service/user"
	"github.com/gin-gonic/gin"
)

func listSuppliersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		suppliers, err := deps.SupplierSvc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, suppliers)
	}
}

func getSupplierHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.SupplierSvc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func createSupplierHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in suppliersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		created, err := deps.SupplierSvc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateSupplierHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in suppliersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := deps.SupplierSvc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteSupplierHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.SupplierSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// listCartsHandler exposes every user's persisted cart rows to the
// back-office, optionally filtered by owner.
func listCartsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := deps.CartRepo.ListAll(c.Request.Context(), c.Query("userId"))
		if err != nil {
			writeError(c, err)
			return
		}
		if rows == nil {
			rows = []domain.CartRow{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func listUsersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := deps.UserSvc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func updateUserHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		actor, _ := currentUser(c)
		updated, err := deps.UserSvc.Update(c.Request.Context(), actor, c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteUserHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := currentUser(c)
		if err := deps.UserSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
