package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	promReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aiscollector_records_received_total",
		Help: "Decoded records received from MQTT.",
	})
	promPersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aiscollector_persist_failures_total",
		Help: "Records that failed to persist to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(promReceived, promPersistFailures)
}

// vesselLatestHandler serves the latest known record for an MMSI,
// trying Redis first and falling back to Postgres, per the domain
// stack's documented cache-then-store lookup order.
func vesselLatestHandler(db *sql.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mmsi := strings.TrimPrefix(r.URL.Path, "/vessels/")
		mmsi = strings.TrimSuffix(mmsi, "/latest")
		if mmsi == "" {
			http.Error(w, "mmsi required", http.StatusBadRequest)
			return
		}

		if cached, err := cachedLatest(r.Context(), rdb, mmsi); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("redis lookup for mmsi %s: %v", mmsi, err)
		}

		raw, err := latestFromDB(db, mmsi)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "lookup failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	}
}

func settingsHandler(s Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

func registerHTTPHandlers(mux *http.ServeMux, s Settings, db *sql.DB, rdb *redis.Client) {
	mux.HandleFunc("/vessels/", vesselLatestHandler(db, rdb))
	mux.HandleFunc("/settings", settingsHandler(s))
	mux.Handle("/metrics", promhttp.Handler())
}
