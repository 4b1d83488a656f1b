package user

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/models"
)

//
// 🟢 POST /cart
//
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		UserID    string `json:"user_id"`
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing user_id or product_id"})
		return
	}

	if input.UserID == "" || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing user_id or product_id"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user_id or product_id"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user_id or product_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Chaque ajout crée une nouvelle ligne, quantité fixée à 1 : pas de
	// fusion avec une ligne existante (comportement attendu par le front)
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := h.Carts.Insert(ctx, &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"newItem": item,
	})
}

//
// 🔵 GET /viewcart?userId=...
//
func (h *Handler) ViewCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.Carts.ItemsForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}
