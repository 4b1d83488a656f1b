package database

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"velora_back_end/internal/models"
)

type ProductStore struct {
	col *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{col: db.Collection("products")}
}

func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, p)
	return err
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// All renvoie le catalogue complet, sans filtre ni pagination.
func (s *ProductStore) All(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// searchFilter construit le filtre regex du repli MongoDB. Le texte de
// l'utilisateur est échappé : c'est un littéral, pas un motif.
func searchFilter(query string) bson.M {
	return bson.M{"product_name": bson.M{
		"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
	}}
}

// SearchByName est le repli quand Elasticsearch est indisponible :
// filtre regex insensible à la casse sur le nom du produit.
func (s *ProductStore) SearchByName(ctx context.Context, query string) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, searchFilter(query))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
