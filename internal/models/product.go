package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"product_name" json:"product_name"`
	Price float64            `bson:"product_price" json:"product_price"`
	Image string             `bson:"product_image" json:"product_image"`
}
