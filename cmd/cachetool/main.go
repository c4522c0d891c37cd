package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"loop-route-service/internal/adapters/cache"
	"loop-route-service/internal/config"
	"loop-route-service/internal/platform/db"
)

// cachetool initializes (and optionally clears) the route-cache schema
// for the configured backend.
func main() {
	clear := flag.Bool("clear", false, "drop cached route distances after init")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	conn, err := open()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing route cache schema...")
	if err := cache.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *clear {
		log.Println("Clearing cached route distances...")
		if err := cache.ClearSchema(conn); err != nil {
			log.Fatalf("clearing failed: %v", err)
		}
		log.Println("Cache cleared.")
	}
}

func open() (*sql.DB, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return db.Open(databaseURL)
	}
	return sql.Open("sqlite", config.Get("SQLITE_PATH", "data/routes.db"))
}
