package user

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/models"
)

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)

	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	rec := env.doJSON(t, http.MethodPost, "/cart", map[string]string{
		"user_id":    userID.Hex(),
		"product_id": productID.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string          `json:"message"`
		NewItem models.CartItem `json:"newItem"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Item added to cart", body.Message)
	require.Equal(t, userID, body.NewItem.UserID)
	require.Equal(t, productID, body.NewItem.ProductID)
	require.Equal(t, 1, body.NewItem.Quantity)
	require.False(t, body.NewItem.ID.IsZero())
}

func TestAddToCartMissingFields(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]string{
		{"user_id": primitive.NewObjectID().Hex()},
		{"product_id": primitive.NewObjectID().Hex()},
		{},
	}

	for _, payload := range cases {
		rec := env.doJSON(t, http.MethodPost, "/cart", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	// aucun enregistrement créé
	require.Equal(t, 0, env.carts.count())
}

func TestAddToCartDuplicatesKept(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"user_id":    primitive.NewObjectID().Hex(),
		"product_id": primitive.NewObjectID().Hex(),
	}

	// deux ajouts identiques → deux lignes distinctes, pas de fusion
	rec1 := env.doJSON(t, http.MethodPost, "/cart", payload)
	rec2 := env.doJSON(t, http.MethodPost, "/cart", payload)
	require.Equal(t, http.StatusOK, rec1.Code)
	require.Equal(t, http.StatusOK, rec2.Code)

	require.Equal(t, 2, env.carts.count())
	require.NotEqual(t, env.carts.items[0].ID, env.carts.items[1].ID)
	require.Equal(t, 1, env.carts.items[0].Quantity)
	require.Equal(t, 1, env.carts.items[1].Quantity)
}

func TestViewCart(t *testing.T) {
	env := newTestEnv(t)

	userID := primitive.NewObjectID()
	product := models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Casque audio",
		Price: 59.99,
		Image: "http://minio.local/velora-images/products/casque.jpg",
	}
	env.carts.products[product.ID] = product

	env.doJSON(t, http.MethodPost, "/cart", map[string]string{
		"user_id":    userID.Hex(),
		"product_id": product.ID.Hex(),
	})

	rec := env.doJSON(t, http.MethodGet, "/viewcart?userId="+userID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.CartItemWithProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, userID, items[0].UserID)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, "Casque audio", items[0].Product.Name)
	require.Equal(t, 59.99, items[0].Product.Price)
}

func TestViewCartInvalidUserID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/viewcart?userId=pas-un-id", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
