// Command aiscollector subscribes to decoded AIS records published by
// aisdecoded over MQTT, persists them to Postgres, caches the latest
// record per vessel in Redis, and re-broadcasts new records to
// connected UI clients over Socket.IO.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
)

func main() {
	cfgPath := flag.String("config", "./settings.json", "Path to settings.json")
	flag.Parse()

	var s Settings
	data, err := ioutil.ReadFile(*cfgPath)
	if err != nil {
		log.Fatalf("Error reading settings: %v", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		log.Fatalf("Invalid JSON in %q: %v", *cfgPath, err)
	}
	if s.Debug {
		log.Println("Debug mode enabled")
	}

	db, err := openDB(s)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL database: %v", err)
	}
	defer db.Close()
	if s.Debug {
		log.Printf("Connected to PostgreSQL database: %s", s.DBName)
	}

	rdb := newRedisClient(s)
	if rdb != nil {
		log.Printf("Caching latest state in Redis at %s", s.RedisAddr)
	}

	go startSocketIOServer(fmt.Sprintf(":%d", s.SocketIOListen))

	mqttClient := connectMQTT(s, db, rdb)
	defer mqttClient.Disconnect(250)

	mux := http.NewServeMux()
	registerHTTPHandlers(mux, s, db, rdb)
	addr := fmt.Sprintf(":%d", s.ListenPort)
	log.Printf("HTTP server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
