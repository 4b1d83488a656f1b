package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/config"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
)

type Handlers struct {
	User    *user.Handler
	Product *product.Handler
	Redis   *redis.Client // nil → rate limit désactivé
}

func RegisterRoutes(r *gin.Engine, cfg config.Config, h Handlers) {
	// CORS : une seule origine autorisée, liste de méthodes/headers fixe
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Backend is working!</h1>"))
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend awake!"})
	})

	// Utilisateurs — un client Redis absent doit donner une interface
	// nil, pas un pointeur nil emballé
	var limiter middleware.AttemptStore
	if h.Redis != nil {
		limiter = h.Redis
	}
	r.POST("/signup", middleware.SignupRateLimit(limiter), h.User.Signup)
	r.POST("/login", middleware.LoginRateLimit(limiter), h.User.Login)
	r.GET("/profile/:email", h.User.GetProfile)
	r.PUT("/profile/update", h.User.UpdateProfile)

	// Admin — la clé est vérifiée AVANT tout traitement du multipart,
	// aucun fichier n'est stocké pour un appelant non autorisé
	admin := r.Group("/admin", middleware.AdminKey(cfg.AdminKey))
	admin.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Admin Panel!")
	})
	admin.POST("", h.Product.CreateProduct)

	// Produits
	r.GET("/products", h.Product.GetAllProducts)
	r.GET("/products/search", h.Product.SearchProducts)
	r.GET("/products/:id", h.Product.GetProduct)

	// Panier
	r.POST("/cart", h.User.AddToCart)
	r.GET("/viewcart", h.User.ViewCart)
}
