package httpserver

import (
	"net/http"

	categorysvc "storefront/internal/service/category"
	productsvc "storefront/internal/service/product"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.Query("id"); id != "" {
			p, err := deps.ProductSvc.GetByID(ctx, id)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, p)
			return
		}
		if slug := c.Query("slug"); slug != "" {
			p, err := deps.ProductSvc.GetBySlug(ctx, slug)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, p)
			return
		}
		products, err := deps.ProductSvc.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func createProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := deps.ProductSvc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listCategoriesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := deps.CategorySvc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func createCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		created, err := deps.CategorySvc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := deps.CategorySvc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.CategorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
