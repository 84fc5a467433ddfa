package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/daybook-app/daybook-backend/internal/config"
	"github.com/daybook-app/daybook-backend/internal/database"
	"github.com/daybook-app/daybook-backend/internal/handlers"
	"github.com/daybook-app/daybook-backend/internal/middleware"
	"github.com/daybook-app/daybook-backend/internal/repository"
	"github.com/daybook-app/daybook-backend/internal/routes"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Println("⚠️  WARNING: JWT_SECRET not set. Tokens signed with the default secret are not safe.")
		log.Println("   Set JWT_SECRET to the secret shared with the identity provider.")
	}

	// Storage: MongoDB by default, in-memory when MONGODB_URI=memory (local dev)
	var entriesRepo repository.Entries
	if cfg.MongoURI == "memory" {
		log.Println("⚠️  Using in-memory storage. Entries are lost on restart.")
		entriesRepo = repository.NewMemoryEntries()
	} else {
		log.Printf("Connecting to MongoDB...")
		if err := database.Connect(cfg.MongoURI); err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer database.Disconnect()

		mongoRepo := repository.NewMongoEntries(database.DB)
		if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
			log.Printf("⚠️  WARNING: failed to ensure MongoDB entry indexes: %v", err)
		} else {
			log.Println("✅ MongoDB entry indexes ensured")
		}
		entriesRepo = mongoRepo
	}

	// Setup router
	r := chi.NewRouter()

	// CORS: permissive by default so any frontend origin can call the API;
	// narrow with ALLOWED_ORIGINS when needed
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → in-process per-IP rate limit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer database.DisconnectRedis()
		r.Use(middleware.RateLimitMiddleware)
	}

	// Resolve the caller identity from the bearer token once per request
	r.Use(middleware.Auth(cfg.JWTSecret))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, handlers.NewEntryHandler(entriesRepo))

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /entries")
	log.Println("  GET    /entries?date=YYYY-MM-DD")
	log.Println("  PUT    /entries/{entryId}")
	log.Println("  DELETE /entries/{entryId}")

	log.Printf("🚀 Daybook backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
