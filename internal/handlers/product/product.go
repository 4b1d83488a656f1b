package product

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// Store est la vue du handler sur la collection products.
type Store interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	SearchByName(ctx context.Context, query string) ([]models.Product, error)
}

// Uploader envoie l'image produit vers le stockage objet et renvoie son URL.
type Uploader interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// SearchIndex est l'index plein texte du catalogue.
type SearchIndex interface {
	IndexProduct(p models.Product)
	Search(query string) ([]models.Product, error)
}

// Cache est la vue du handler sur Redis : lecture/écriture/invalidation
// de la liste produits. *redis.Client l'implémente directement.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Handler struct {
	Products Store
	Cache    Cache       // nil → pas de cache
	Search   SearchIndex // nil → recherche MongoDB uniquement
	Uploader Uploader
}

func NewHandler(products Store, cache Cache, search SearchIndex, uploader Uploader) *Handler {
	return &Handler{Products: products, Cache: cache, Search: search, Uploader: uploader}
}

const listCacheKey = "products:all"

// GET /products
func (h *Handler) GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// ✅ Vérifie le cache Redis
	if h.Cache != nil {
		if val, err := h.Cache.Get(ctx, listCacheKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	products, err := h.Products.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	// ✅ Met en cache
	if h.Cache != nil {
		if data, err := json.Marshal(products); err == nil {
			h.Cache.Set(ctx, listCacheKey, data, time.Hour)
		}
	}

	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// POST /admin — la clé admin a déjà été vérifiée par le middleware,
// l'upload ne démarre donc jamais pour un appelant non autorisé
func (h *Handler) CreateProduct(c *gin.Context) {
	file, err := c.FormFile("pro_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image required"})
		return
	}

	name := c.PostForm("pro_name")
	price, err := strconv.ParseFloat(c.PostForm("pro_price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pro_price"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := h.Uploader.UploadFile(ctx, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	p := models.Product{Name: name, Price: price, Image: imageURL}
	if err := h.Products.Insert(ctx, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch en arrière-plan
	if h.Search != nil {
		go h.Search.IndexProduct(p)
	}

	// Invalide le cache de la liste
	if h.Cache != nil {
		h.Cache.Del(ctx, listCacheKey)
	}

	c.JSON(http.StatusCreated, p)
}

// GET /products/search?q=...
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 Recherche dans Elasticsearch (prioritaire)
	if h.Search != nil {
		if results, err := h.Search.Search(query); err == nil && len(results) > 0 {
			c.JSON(http.StatusOK, results)
			return
		}
	}

	// 🔁 Fallback MongoDB si ES vide ou indisponible
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.SearchByName(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}
