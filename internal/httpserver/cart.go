package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items     []domain.CartLine `json:"items"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"itemCount"`
}

type addToCartRequest struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize"`
}

type updateCartRequest struct {
	ItemID      string `json:"itemId"`
	NewQuantity int    `json:"newQuantity"`
}

// resolveCart builds the cart engine for this request's principal: the
// bearer token's user when present, the guest cart cookie otherwise.
func resolveCart(c *gin.Context, deps Deps, logger *log.Logger) (*cart.Engine, error) {
	engine := cart.New(deps.CartRepo, deps.ProductSvc, newCookieStore(c), logger)
	var userID string
	if u, ok := currentUser(c); ok {
		userID = u.ID
	}
	if err := engine.SetSession(c.Request.Context(), userID); err != nil {
		return nil, err
	}
	return engine, nil
}

func respondCart(c *gin.Context, engine *cart.Engine) {
	lines := engine.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, cartResponse{
		Items:     lines,
		Total:     engine.TotalCents(),
		ItemCount: engine.ItemCount(),
	})
}

func getCartHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, err := resolveCart(c, deps, logger)
		if err != nil {
			writeError(c, err)
			return
		}
		respondCart(c, engine)
	}
}

func addToCartHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if req.ProductID == "" {
			badRequest(c, "productId is required")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		engine, err := resolveCart(c, deps, logger)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := engine.Add(c.Request.Context(), req.ProductID, req.SelectedSize, req.Quantity); err != nil {
			writeError(c, err)
			return
		}
		respondCart(c, engine)
	}
}

func updateCartHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if req.ItemID == "" {
			badRequest(c, "itemId is required")
			return
		}

		engine, err := resolveCart(c, deps, logger)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := engine.UpdateQuantity(c.Request.Context(), req.ItemID, req.NewQuantity); err != nil {
			writeError(c, err)
			return
		}
		respondCart(c, engine)
	}
}

func deleteFromCartHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Query("itemId")
		clearAll := c.Query("clearAll") == "true"
		if itemID == "" && !clearAll {
			badRequest(c, "itemId or clearAll=true is required")
			return
		}

		engine, err := resolveCart(c, deps, logger)
		if err != nil {
			writeError(c, err)
			return
		}
		if clearAll {
			err = engine.Clear(c.Request.Context())
		} else {
			err = engine.Remove(c.Request.Context(), itemID)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		respondCart(c, engine)
	}
}
