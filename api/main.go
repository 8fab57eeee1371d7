package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/Myseie/ShopInventory/docs"
	"github.com/Myseie/ShopInventory/internal/auth"
	"github.com/Myseie/ShopInventory/internal/config"
	"github.com/Myseie/ShopInventory/internal/db"
	api "github.com/Myseie/ShopInventory/internal/http"
	"github.com/Myseie/ShopInventory/internal/http/handlers"
	rl "github.com/Myseie/ShopInventory/internal/http/rate_limiter"
	"github.com/Myseie/ShopInventory/internal/imagestore"
	"github.com/Myseie/ShopInventory/internal/loginguard"
	"github.com/Myseie/ShopInventory/internal/repo"
)

// @title Shop Inventory API
// @version 1.0
// @description Admin backend for the product catalog: list, search, create, edit and delete products with image uploads.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	var lg *loginguard.Guard
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		lg = loginguard.New(rdb)
	} else {
		log.Println("REDIS_ADDR not set, login guard disabled")
	}
	handlers.SetLoginGuard(lg)

	images, err := imagestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Could not prepare image directory: %v", err)
	}
	handlers.SetImageStore(images)
	api.SetImageDir(cfg.UploadDir)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
		handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		handlers.SetProductRepo(repo.NewInMemoryProductRepository())
		handlers.SetUserRepo(repo.NewInMemoryUserRepository())
	}

	go rl.StartVisitorCleanupLoop()

	r := api.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
