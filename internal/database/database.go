package database

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora_back_end/internal/config"
)

// Erreurs sentinelles renvoyées par les stores, quelle que soit la base
// sous-jacente. Les handlers ne dépendent jamais des erreurs du driver.
var (
	ErrNotFound  = errors.New("document introuvable")
	ErrDuplicate = errors.New("document déjà existant")
)

// Clients regroupe les connexions externes. L'instance est construite
// explicitement dans main puis injectée dans les handlers — pas de
// variables globales.
type Clients struct {
	Mongo   *mongo.Client
	DB      *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

// Connect initialise MongoDB puis les collaborateurs optionnels
// (Redis, Elasticsearch, MinIO). Seule une URI Mongo invalide est fatale :
// un ping qui échoue au démarrage est loggé, les requêtes échoueront
// individuellement ensuite.
func Connect(ctx context.Context, cfg config.Config) *Clients {
	clients := &Clients{}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("❌ URI MongoDB invalide: %v", err)
	}
	clients.Mongo = client
	clients.DB = client.Database(cfg.MongoDBName)

	if err := client.Ping(ctx, nil); err != nil {
		log.Println("❌ Erreur connexion MongoDB:", err)
	} else {
		log.Println("✅ Connecté à MongoDB :", cfg.MongoDBName)
	}

	clients.Redis = connectRedis(ctx, cfg)
	clients.Elastic = connectElastic(cfg)
	clients.MinIO = connectMinIO(ctx, cfg)

	return clients
}

// EnsureIndexes crée les index requis. L'unicité de l'email est garantie
// par la base elle-même : deux signups concurrents ne peuvent pas
// aboutir tous les deux.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("⚠️ Création index unique users.email échouée:", err)
	}

	_, err = db.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		log.Println("⚠️ Création index carts.user_id échouée:", err)
	}
}

func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_HOST non configuré — cache produits désactivé")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis indisponible — cache produits désactivé:", err)
		return nil
	}
	log.Println("✅ Connecté à Redis")
	return client
}

func connectElastic(cfg config.Config) *elasticsearch.Client {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche via MongoDB uniquement")
		return nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return nil
	}
	log.Println("✅ Client Elasticsearch prêt :", cfg.ElasticURL)
	return client
}

func connectMinIO(ctx context.Context, cfg config.Config) *minio.Client {
	if cfg.Minio.Endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT non configuré — upload d'images indisponible")
		return nil
	}

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		log.Println("⚠️ Erreur connexion MinIO:", err)
		return nil
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO:", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO:", err)
		} else {
			log.Println("🪣 Bucket créé :", cfg.Minio.Bucket)
		}
	}

	log.Println("✅ Connecté à MinIO :", cfg.Minio.Endpoint)
	return client
}

// Close ferme proprement les connexions ouvertes.
func (c *Clients) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Println("⚠️ Erreur fermeture MongoDB:", err)
		}
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
