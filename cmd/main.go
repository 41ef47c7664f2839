package main

import (
	"log"
	"os"

	"github.com/kasirapp/user-api/internal/config"
	"github.com/kasirapp/user-api/internal/database"
	"github.com/kasirapp/user-api/internal/role"
	"github.com/kasirapp/user-api/internal/server"
)

func main() {
	cfg := config.Load()

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	if err := database.RunMigrations(db); err != nil {
		log.Printf("⚠️  SQL migrations failed: %v", err)
		log.Println("⚠️  Listing indexes may be missing; queries still work")
	} else {
		log.Println("✅ SQL migrations completed successfully")
	}

	// ========== SEED DEFAULT DATA ==========
	if err := role.SeedDefaultRoles(db); err != nil {
		log.Fatal("❌ Failed to seed roles: ", err)
	}
	log.Println("✅ Default roles seeded")

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 User API starting on %s", cfg.ServerAddr)
	log.Printf("💾 Database driver: %s", cfg.DBDriver)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
