package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// CartItemWithProduct est la projection renvoyée par /viewcart :
// la référence produit est remplacée par le document produit complet
type CartItemWithProduct struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Product  Product            `bson:"product" json:"product"`
}
