package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// Store est la vue du handler sur la collection users.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateByEmail(ctx context.Context, email, name, address string) (*models.User, error)
}

// CartStore est la vue du handler sur la collection carts.
type CartStore interface {
	Insert(ctx context.Context, item *models.CartItem) error
	ItemsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItemWithProduct, error)
}

// WelcomeMailer envoie l'email de bienvenue après le signup.
type WelcomeMailer interface {
	SendWelcomeEmail(to, name string) error
}

type Handler struct {
	Users Store
	Carts CartStore
	Mail  WelcomeMailer // peut être nil
}

func NewHandler(users Store, carts CartStore, mail WelcomeMailer) *Handler {
	return &Handler{Users: users, Carts: carts, Mail: mail}
}

// ================== SIGNUP / LOGIN ==================

func (h *Handler) Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// email déjà pris ? seule une absence avérée laisse continuer :
	// une panne du store ne doit pas passer pour "email disponible"
	_, err := h.Users.FindByEmail(ctx, input.Email)
	if err == nil {
		c.String(http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := models.User{Name: input.Name, Email: input.Email, Password: hashed}
	if err := h.Users.Insert(ctx, &user); err != nil {
		// deux signups concurrents sur le même email : l'index unique tranche
		if errors.Is(err, database.ErrDuplicate) {
			c.String(http.StatusBadRequest, "User already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if h.Mail != nil {
		go func(to, name string) {
			if err := h.Mail.SendWelcomeEmail(to, name); err != nil {
				log.Println("⚠️ Envoi email de bienvenue échoué:", err)
			}
		}(user.Email, user.Name)
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, input.Email)
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.String(http.StatusBadRequest, "Incorrect password")
		return
	}

	// Projection réduite : aucun token n'est émis, le client retient
	// l'identité de son côté
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in",
		"user": gin.H{
			"_id":   user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ================== PROFIL ==================

func (h *Handler) GetProfile(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.UpdateByEmail(ctx, input.Email, input.Name, input.Address)
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
