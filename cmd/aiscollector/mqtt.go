package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"encoding/json"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-redis/redis/v8"

	"github.com/madpsy/aisdecode/pipeline"
)

func connectMQTT(s Settings, db *sql.DB, rdb *redis.Client) mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker("tcp://" + s.MQTTServer)
	if s.MQTTTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if s.MQTTAuth != "" {
		parts := strings.SplitN(s.MQTTAuth, ":", 2)
		if len(parts) == 2 {
			opts.SetUsername(parts[0])
			opts.SetPassword(parts[1])
		} else {
			log.Printf("Invalid MQTT authentication format. Expected user:pass.")
		}
	}
	opts.SetClientID("aiscollector")
	opts.SetCleanSession(true)
	opts.SetDefaultPublishHandler(func(_ mqtt.Client, msg mqtt.Message) {
		handleMessage(db, rdb, s, msg.Payload())
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", token.Error())
	}
	topic := strings.TrimRight(s.MQTTTopic, "/") + "/#"
	if token := client.Subscribe(topic, 0, nil); token.Wait() && token.Error() != nil {
		log.Fatalf("Failed to subscribe to %s: %v", topic, token.Error())
	}
	log.Printf("Subscribed to %s on %s", topic, s.MQTTServer)
	return client
}

func handleMessage(db *sql.DB, rdb *redis.Client, s Settings, payload []byte) {
	var rec pipeline.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		log.Printf("[DEBUG] failed to unmarshal record: %v", err)
		return
	}
	promReceived.Inc()

	if err := persistRecord(db, &rec); err != nil {
		promPersistFailures.Inc()
		if s.Debug {
			log.Printf("[DEBUG] persist failure for mmsi %s: %v", rec.MMSI, err)
		}
	}
	cacheLatest(context.Background(), rdb, s, &rec)
	broadcastRecord(&rec)
}
