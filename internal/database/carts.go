package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"velora_back_end/internal/models"
)

type CartStore struct {
	col *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{col: db.Collection("carts")}
}

func (s *CartStore) Insert(ctx context.Context, item *models.CartItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, item)
	return err
}

// ItemsForUser renvoie les lignes du panier d'un utilisateur avec la
// référence produit développée via $lookup. Les lignes dont le produit
// a disparu sont conservées avec un produit vide (pas d'intégrité
// référentielle côté panier).
func (s *CartStore) ItemsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItemWithProduct, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "product_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.CartItemWithProduct{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
