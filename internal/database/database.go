package database

import (
	"context"
	"log"
	"time"

	"digitalstore_back_end/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Databases bundles every backing service. Mongo is mandatory; Redis,
// MinIO and Elasticsearch stay nil when not configured and callers
// degrade accordingly.
type Databases struct {
	client  *mongo.Client
	Mongo   *mongo.Database
	Redis   *redis.Client
	MinIO   *minio.Client
	Elastic *elasticsearch.Client
}

func Connect(ctx context.Context, cfg *config.Config) *Databases {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dbs := &Databases{}
	dbs.connectMongo(ctx, cfg)
	dbs.connectRedis(ctx, cfg)
	dbs.connectMinIO(ctx, cfg)
	dbs.connectElastic(cfg)

	log.Println("✅ All configured databases connected")
	return dbs
}

func (d *Databases) Close(ctx context.Context) {
	if d.client != nil {
		if err := d.client.Disconnect(ctx); err != nil {
			log.Println("⚠️  Error closing MongoDB connection:", err)
		}
	}
	if d.Redis != nil {
		d.Redis.Close()
	}
}

func (d *Databases) connectMongo(ctx context.Context, cfg *config.Config) {
	opts := options.Client().ApplyURI(cfg.MongoURI).SetTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal("❌ MongoDB connection failed:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("❌ MongoDB ping failed:", err)
	}

	d.client = client
	d.Mongo = client.Database(cfg.MongoDBName)
	log.Println("✅ Connected to MongoDB:", cfg.MongoDBName)
}

func (d *Databases) connectRedis(ctx context.Context, cfg *config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("⚠️  REDIS_HOST not set — webhook event dedup is disabled, duplicate emails are possible")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Redis connection failed:", err)
	}

	d.Redis = client
	log.Println("✅ Connected to Redis")
}

func (d *Databases) connectMinIO(ctx context.Context, cfg *config.Config) {
	if cfg.MinioEndpoint == "" {
		log.Println("ℹ️  MINIO_ENDPOINT not set — uploads go to the local disk")
		return
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatal("❌ MinIO connection failed:", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		log.Fatal("❌ MinIO bucket check failed:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ MinIO bucket creation failed:", err)
		}
		log.Println("🪣 Bucket created:", cfg.MinioBucket)
	}

	d.MinIO = client
	log.Println("✅ Connected to MinIO:", cfg.MinioEndpoint)
}

func (d *Databases) connectElastic(cfg *config.Config) {
	if cfg.ElasticURL == "" {
		log.Println("ℹ️  ELASTIC_URL not set — product search falls back to MongoDB")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		log.Fatal("❌ Elasticsearch client creation failed:", err)
	}

	res, err := client.Info()
	if err != nil {
		log.Fatal("❌ Elasticsearch connection failed:", err)
	}
	res.Body.Close()

	d.Elastic = client
	log.Println("✅ Connected to Elasticsearch")
}
