// Command aisdecoded listens for AIVDM/AIVDO sentences over UDP,
// decodes each one through the aisdecode pipeline, and publishes
// decoded records to MQTT. It replaces the teacher's go-ais-backed
// ingest daemon with the in-house decode core.
package main

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/madpsy/aisdecode/pipeline"
)

var cfg Config

var debugFlag bool

// dedupState tracks the last time each sentence hash was seen.
var dedupState = struct {
	sync.Mutex
	last map[uint32]time.Time
}{last: make(map[uint32]time.Time)}

func fnvHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func main() {
	flag.Parse()
	args := flag.Args()

	var dir string
	switch len(args) {
	case 0:
		var err error
		dir, err = os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get current directory: %v", err)
		}
	case 1:
		dir = args[0]
	default:
		log.Fatalf("Usage: %s [config-dir]", os.Args[0])
	}

	cfgPath := filepath.Join(dir, "settings.json")
	data, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		log.Fatalf("Failed to read config %q: %v", cfgPath, err)
	}
	cfg.RequireFragmentReassemblyUpstream = true
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Invalid JSON in %q: %v", cfgPath, err)
	}
	debugFlag = cfg.Debug

	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	dedupWindow := time.Duration(cfg.DeduplicationWindowMs) * time.Millisecond

	p := pipeline.New(pipeline.Config{
		StrictArmor:                       cfg.StrictArmor,
		RequireFragmentReassemblyUpstream: cfg.RequireFragmentReassemblyUpstream,
	})

	var mqttClient mqtt.Client
	if cfg.MQTTServer != "" {
		mqttClient = connectMQTT(cfg)
	}

	if dedupWindow > 0 {
		go func() {
			ticker := time.NewTicker(dedupWindow)
			defer ticker.Stop()
			for range ticker.C {
				cleanupDedup(dedupWindow)
			}
		}()
	} else {
		log.Println("Deduplication is disabled because window is set to 0")
	}

	mux := http.NewServeMux()
	registerMetricsHandlers(mux)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		log.Printf("HTTP serving on http://localhost%s/metrics", addr)
		log.Fatal(http.ListenAndServe(addr, mux))
	}()

	udpAddr := fmt.Sprintf(":%d", cfg.UDPListenPort)
	pc, err := net.ListenPacket("udp", udpAddr)
	if err != nil {
		log.Fatalf("UDP listen %s: %v", udpAddr, err)
	}
	defer pc.Close()

	packetChan := make(chan udpPacket, 1000)
	for i := 0; i < cfg.NumWorkers; i++ {
		go worker(packetChan, p, mqttClient, dedupWindow)
	}

	buf := make([]byte, 2048)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			log.Printf("UDP read error: %v", err)
			continue
		}
		raw := make([]byte, n)
		copy(raw, buf[:n])
		packetChan <- udpPacket{raw: raw, sourceIP: strings.Split(addr.String(), ":")[0]}
	}
}

type udpPacket struct {
	raw      []byte
	sourceIP string
}

func connectMQTT(cfg Config) mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker("tcp://" + cfg.MQTTServer)
	if cfg.MQTTTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if cfg.MQTTAuth != "" {
		parts := strings.SplitN(cfg.MQTTAuth, ":", 2)
		if len(parts) == 2 {
			opts.SetUsername(parts[0])
			opts.SetPassword(parts[1])
		} else {
			log.Printf("Invalid MQTT authentication format. Expected user:pass.")
		}
	}
	opts.SetClientID("aisdecoded")
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Printf("Failed to connect to MQTT broker: %v", token.Error())
	} else {
		log.Printf("Successfully connected to MQTT broker: %s", cfg.MQTTServer)
	}
	return client
}

func cleanupDedup(window time.Duration) {
	cutoff := time.Now().Add(-window)
	dedupState.Lock()
	defer dedupState.Unlock()
	for h, t := range dedupState.last {
		if t.Before(cutoff) {
			delete(dedupState.last, h)
		}
	}
}

func worker(ch <-chan udpPacket, p *pipeline.Pipeline, mqttClient mqtt.Client, dedupWindow time.Duration) {
	for pkt := range ch {
		line := strings.TrimSpace(string(pkt.raw))
		if line == "" {
			continue
		}
		totalCounter.AddEvent()
		promTotal.Inc()

		if dedupWindow > 0 {
			h := fnvHash(line)
			dedupState.Lock()
			last, seen := dedupState.last[h]
			dedupState.last[h] = time.Now()
			dedupState.Unlock()
			if seen && time.Since(last) < dedupWindow {
				dedupCounter.AddEvent()
				promDedup.Inc()
				continue
			}
		}

		rec, err := p.DecodeSentence(line)
		if err != nil {
			var uerr *pipeline.UnsupportedTypeError
			if errors.As(err, &uerr) {
				unsupportedCounter.AddEvent()
				promUnsupported.Inc()
				continue
			}
			failureCounter.AddEvent()
			promFailures.Inc()
			if debugFlag {
				log.Printf("[DEBUG] decode failure from %s: %v | raw: %s", pkt.sourceIP, err, line)
			} else if errors.Is(err, pipeline.ErrChecksumFailed) || errors.Is(err, pipeline.ErrTruncated) {
				log.Printf("decode failure from %s: %v", pkt.sourceIP, err)
			}
			continue
		}

		if mqttClient != nil {
			publish(mqttClient, rec)
		}
	}
}

func publish(client mqtt.Client, rec *pipeline.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		log.Printf("marshal record for mmsi %s: %v", rec.MMSI, err)
		return
	}
	topic := fmt.Sprintf("%s/%s", strings.TrimRight(cfg.MQTTTopic, "/"), rec.MMSI)
	token := client.Publish(topic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("MQTT publish to %s: %v", topic, token.Error())
		return
	}
	forwardedCounter.AddEvent()
	promForwarded.Inc()
}
