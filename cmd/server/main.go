package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/services"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clients := database.Connect(ctx, cfg)
	defer clients.Close(context.Background())

	database.EnsureIndexes(ctx, clients.DB)

	users := database.NewUserStore(clients.DB)
	products := database.NewProductStore(clients.DB)
	carts := database.NewCartStore(clients.DB)

	uploader := services.NewUploader(clients.MinIO, cfg.Minio)
	search := services.NewProductIndex(clients.Elastic)
	mailer := services.NewMailer(cfg.SMTP)

	// sans Redis le handler doit recevoir une interface nil, pas un
	// pointeur nil emballé
	var cache product.Cache
	if clients.Redis != nil {
		cache = clients.Redis
	}

	h := routes.Handlers{
		User:    user.NewHandler(users, carts, mailer),
		Product: product.NewHandler(products, cache, search, uploader),
		Redis:   clients.Redis,
	}

	r := gin.Default()
	routes.RegisterRoutes(r, cfg, h)

	log.Println("🚀 Serveur Velora lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Erreur serveur HTTP:", err)
	}
}
