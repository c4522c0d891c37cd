package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"loop-route-service/internal/adapters/cache"
	"loop-route-service/internal/adapters/distance"
	"loop-route-service/internal/adapters/places"
	"loop-route-service/internal/api"
	"loop-route-service/internal/config"
	"loop-route-service/internal/platform/db"
	"loop-route-service/internal/platform/metrics"
	"loop-route-service/internal/ports"
	"loop-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (places lookup, distance oracle, route
// cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	tuningPath := config.Get("TUNING_PATH", "config/tuning.yaml")

	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		log.Fatal(err)
	}

	routeCache, closeCache, err := openRouteCache()
	if err != nil {
		log.Fatal(err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	placesProvider, err := openPlacesProvider()
	if err != nil {
		log.Fatal(err)
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}
	oracle, err := distance.NewORSRouteProvider(orsKey, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	metrics.RegisterDefault()

	orch := services.NewOrchestrator(placesProvider, oracle)
	router := api.NewRouter(orch, tuning)

	// Timeouts are tuned for full searches (many oracle round trips).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRouteCache picks the cache backend by environment: Redis when
// REDIS_ADDR is set, Postgres when DATABASE_URL is set, SQLite
// otherwise.
func openRouteCache() (ports.RouteCache, func(), error) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisRouteCache(client, 0), func() { _ = client.Close() }, nil
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return cache.NewSQLRouteCache(pg), func() { _ = pg.Close() }, nil
	}

	sqlitePath := config.Get("SQLITE_PATH", "data/routes.db")
	lite, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.InitSchema(lite); err != nil {
		lite.Close()
		return nil, nil, err
	}
	return cache.NewSqliteRouteCache(lite), func() { _ = lite.Close() }, nil
}

// openPlacesProvider prefers a pre-built Elasticsearch places index
// when ELASTIC_URL is set, falling back to the ORS POIs endpoint.
func openPlacesProvider() (ports.PlacesProvider, error) {
	if url := os.Getenv("ELASTIC_URL"); url != "" {
		index := config.Get("ELASTIC_INDEX", "places")
		return places.NewElasticPlacesProvider(url, index)
	}

	orsKey := os.Getenv("ORS_API_KEY")
	return places.NewORSPlacesProvider(orsKey)
}
