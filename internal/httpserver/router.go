package httpserver

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	cartitemrepo "storefront/internal/repository/cartitem"
	authsvc "storefront/internal/service/auth"
	categorysvc "storefront/internal/service/category"
	heroslidesvc "storefront/internal/service/heroslide"
	postsvc "storefront/internal/service/post"
	productsvc "storefront/internal/service/product"
	suppliersvc "storefront/internal/service/supplier"
	usersvc "storefront/internal/service/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, actor domain.User, targetID string, in usersvc.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.User, targetID string) error
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, in categorysvc.Input) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.Input) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type SupplierService interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	Create(ctx context.Context, in suppliersvc.Input) (*domain.Supplier, error)
	Update(ctx context.Context, id string, in suppliersvc.Input) (*domain.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type HeroSlideService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.HeroSlide, error)
	Create(ctx context.Context, in heroslidesvc.Input) (*domain.HeroSlide, error)
	Update(ctx context.Context, id string, in heroslidesvc.Input) (*domain.HeroSlide, error)
	Delete(ctx context.Context, id string) error
}

type PostService interface {
	List(ctx context.Context, includeDrafts bool) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, author domain.User, in postsvc.Input) (*domain.Post, error)
	Update(ctx context.Context, id string, in postsvc.Input) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// Deps carries the services the router depends on.
type Deps struct {
	AuthSvc     AuthService
	UserSvc     UserService
	ProductSvc  ProductService
	CategorySvc CategoryService
	SupplierSvc SupplierService
	SlideSvc    HeroSlideService
	PostSvc     PostService
	CartRepo    cartitemrepo.Repository
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.UserSvc == nil || d.ProductSvc == nil ||
		d.CategorySvc == nil || d.SupplierSvc == nil || d.SlideSvc == nil ||
		d.PostSvc == nil || d.CartRepo == nil {
		return errors.New("httpserver: missing dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(correlationMiddleware())
	router.Use(cors.New(corsConfig(corsOrigins)))
	router.Use(identify(deps.AuthSvc))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/register", registerHandler(deps))
	router.POST("/auth/login", loginHandler(deps, logger))
	router.GET("/me", requireUser(), meHandler())

	router.GET("/products", listProductsHandler(deps))
	router.GET("/categories", listCategoriesHandler(deps))
	router.GET("/hero-slides", listSlidesHandler(deps))
	router.GET("/posts", listPostsHandler(deps))

	router.GET("/cart", getCartHandler(deps, logger))
	router.POST("/cart", addToCartHandler(deps, logger))
	router.PUT("/cart", updateCartHandler(deps, logger))
	router.DELETE("/cart", deleteFromCartHandler(deps, logger))

	admin := router.Group("/", requireUser(), requireStaff())
	{
		admin.POST("/products", createProductHandler(deps))
		admin.PUT("/products/:id", updateProductHandler(deps))
		admin.DELETE("/products/:id", deleteProductHandler(deps))

		admin.POST("/categories", createCategoryHandler(deps))
		admin.PUT("/categories/:id", updateCategoryHandler(deps))
		admin.DELETE("/categories/:id", deleteCategoryHandler(deps))

		admin.POST("/hero-slides", createSlideHandler(deps))
		admin.PUT("/hero-slides/:id", updateSlideHandler(deps))
		admin.DELETE("/hero-slides/:id", deleteSlideHandler(deps))

		admin.POST("/posts", createPostHandler(deps))
		admin.PUT("/posts/:id", updatePostHandler(deps))
		admin.DELETE("/posts/:id", deletePostHandler(deps))

		admin.GET("/suppliers", listSuppliersHandler(deps))
		admin.GET("/suppliers/:id", getSupplierHandler(deps))
		admin.POST("/suppliers", createSupplierHandler(deps))
		admin.PUT("/suppliers/:id", updateSupplierHandler(deps))
		admin.DELETE("/suppliers/:id", deleteSupplierHandler(deps))

		admin.GET("/admin/carts", listCartsHandler(deps))
		admin.GET("/admin/users", listUsersHandler(deps))
		admin.PUT("/admin/users/:id", updateUserHandler(deps))
		admin.DELETE("/admin/users/:id", deleteUserHandler(deps))
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
