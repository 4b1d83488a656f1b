package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Port          string
	MongoURI      string
	MongoDBName   string
	AdminKey      string
	AllowedOrigin string

	RedisAddr     string
	RedisPassword string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	Minio MinioConfig
	SMTP  SMTPConfig
}

// Load charge le fichier .env puis construit la configuration du serveur.
// Toutes les valeurs restent surchargeables par l'environnement système.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	return Config{
		Port:          getenv("PORT", "3000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getenv("MONGO_DB", "velora"),
		AdminKey:      os.Getenv("ADMIN_KEY"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:5173"),

		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ElasticURL:      os.Getenv("ELASTIC_URL"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getenv("MINIO_BUCKET", "velora-images"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenv("SMTP_FROM", "noreply@velora.shop"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
