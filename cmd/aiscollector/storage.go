package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	"github.com/madpsy/aisdecode/pipeline"
)

// openDB connects to Postgres and ensures the two tables this daemon
// owns exist: an append-only history and a per-vessel latest-state row.
func openDB(s Settings) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		s.DBHost, s.DBPort, s.DBUser, s.DBPass, s.DBName,
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ais_messages (
			id SERIAL PRIMARY KEY,
			mmsi VARCHAR(9) NOT NULL,
			message_type INT NOT NULL,
			record JSONB NOT NULL,
			received_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`); err != nil {
		return nil, fmt.Errorf("create ais_messages: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ais_vessel_state (
			mmsi VARCHAR(9) PRIMARY KEY,
			record JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`); err != nil {
		return nil, fmt.Errorf("create ais_vessel_state: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_ais_messages_mmsi ON ais_messages (mmsi);`); err != nil {
		log.Printf("create index idx_ais_messages_mmsi: %v", err)
	}
	return db, nil
}

func persistRecord(db *sql.DB, rec *pipeline.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := db.Exec(
		`INSERT INTO ais_messages (mmsi, message_type, record) VALUES ($1, $2, $3)`,
		rec.MMSI, rec.MessageType, payload,
	); err != nil {
		return fmt.Errorf("insert ais_messages: %w", err)
	}
	if _, err := db.Exec(`
		INSERT INTO ais_vessel_state (mmsi, record, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (mmsi) DO UPDATE SET record = $2, updated_at = now()
	`, rec.MMSI, payload); err != nil {
		return fmt.Errorf("upsert ais_vessel_state: %w", err)
	}
	return nil
}

func latestFromDB(db *sql.DB, mmsi string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := db.QueryRow(`SELECT record FROM ais_vessel_state WHERE mmsi = $1`, mmsi).Scan(&raw)
	return raw, err
}

func newRedisClient(s Settings) *redis.Client {
	if s.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: s.RedisAddr})
}

func cacheLatest(ctx context.Context, rdb *redis.Client, s Settings, rec *pipeline.Record) {
	if rdb == nil {
		return
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		log.Printf("marshal record for redis cache: %v", err)
		return
	}
	ttl := time.Duration(s.RedisTTLSecs) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := rdb.Set(ctx, redisKey(rec.MMSI), payload, ttl).Err(); err != nil {
		log.Printf("redis cache set for mmsi %s: %v", rec.MMSI, err)
	}
}

func cachedLatest(ctx context.Context, rdb *redis.Client, mmsi string) (string, error) {
	if rdb == nil {
		return "", redis.Nil
	}
	return rdb.Get(ctx, redisKey(mmsi)).Result()
}

func redisKey(mmsi string) string {
	return "aiscollector:latest:" + mmsi
}
