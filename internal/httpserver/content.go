package httpserver

import (
	"net/http"

	heroslidesvc "storefront/internal/service/heroslide"
	postsvc "storefront/internal/service/post"
	"github.com/gin-gonic/gin"
)

func listSlidesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := true
		if u, ok := currentUser(c); ok && u.Role.IsStaff() && c.Query("all") == "true" {
			activeOnly = false
		}
		slides, err := deps.SlideSvc.List(c.Request.Context(), activeOnly)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, slides)
	}
}

func createSlideHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in heroslidesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		created, err := deps.SlideSvc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateSlideHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in heroslidesvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := deps.SlideSvc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteSlideHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.SlideSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// listPostsHandler serves the public blog and the back-office editor. The
// public list is published-only; lookups by id are not filtered so the
// editor can open drafts.
func listPostsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.Query("id"); id != "" {
			p, err := deps.PostSvc.GetByID(ctx, id)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, p)
			return
		}
		if slug := c.Query("slug"); slug != "" {
			p, err := deps.PostSvc.GetBySlug(ctx, slug)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, p)
			return
		}
		includeDrafts := false
		if u, ok := currentUser(c); ok && u.Role.IsStaff() {
			includeDrafts = true
		}
		posts, err := deps.PostSvc.List(ctx, includeDrafts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

func createPostHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in postsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		author, _ := currentUser(c)
		created, err := deps.PostSvc.Create(c.Request.Context(), author, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updatePostHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in postsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := deps.PostSvc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deletePostHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.PostSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
