package main

import (
	"log"
	"net/http"
	"sync"

	engine "github.com/zishang520/engine.io/v2/engine"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"

	"github.com/madpsy/aisdecode/pipeline"
)

var (
	ioServer *socketio.Server

	connectedClients   = make(map[socketio.SocketId]*socketio.Socket)
	connectedClientsMu sync.RWMutex

	// clientSubscriptions tracks, per socket, which MMSIs it asked for.
	clientSubscriptions   = make(map[socketio.SocketId]map[string]struct{})
	clientSubscriptionsMu sync.Mutex

	// mmsiSubscribers is the reverse index: MMSI -> subscribed sockets.
	mmsiSubscribers   = make(map[string]map[socketio.SocketId]struct{})
	mmsiSubscribersMu sync.RWMutex
)

func startSocketIOServer(addr string) {
	mux := http.NewServeMux()
	eng := types.NewWebServer(nil)
	engine.Attach(eng, nil)
	mux.HandleFunc("/socket.io/", eng.ServeHTTP)

	ioServer = socketio.NewServer(eng, nil)
	setupSocketIOHandlers()

	log.Printf("Socket.IO on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func setupSocketIOHandlers() {
	ioServer.On("connection", func(args ...any) {
		sock := args[0].(*socketio.Socket)
		sid := sock.Id()

		connectedClientsMu.Lock()
		connectedClients[sid] = sock
		connectedClientsMu.Unlock()

		sock.On("ais_sub/:mmsi", func(raw ...any) {
			mmsi, ok := raw[0].(string)
			if !ok {
				return
			}
			subscribe(sid, mmsi)
		})

		sock.On("ais_unsub/:mmsi", func(raw ...any) {
			mmsi, ok := raw[0].(string)
			if !ok {
				return
			}
			unsubscribe(sid, mmsi)
		})

		sock.On("disconnect", func(_ ...any) {
			connectedClientsMu.Lock()
			delete(connectedClients, sid)
			connectedClientsMu.Unlock()

			clientSubscriptionsMu.Lock()
			subs := clientSubscriptions[sid]
			delete(clientSubscriptions, sid)
			clientSubscriptionsMu.Unlock()

			mmsiSubscribersMu.Lock()
			for mmsi := range subs {
				if s := mmsiSubscribers[mmsi]; s != nil {
					delete(s, sid)
					if len(s) == 0 {
						delete(mmsiSubscribers, mmsi)
					}
				}
			}
			mmsiSubscribersMu.Unlock()
		})
	})
}

func subscribe(sid socketio.SocketId, mmsi string) {
	clientSubscriptionsMu.Lock()
	if clientSubscriptions[sid] == nil {
		clientSubscriptions[sid] = make(map[string]struct{})
	}
	clientSubscriptions[sid][mmsi] = struct{}{}
	clientSubscriptionsMu.Unlock()

	mmsiSubscribersMu.Lock()
	if mmsiSubscribers[mmsi] == nil {
		mmsiSubscribers[mmsi] = make(map[socketio.SocketId]struct{})
	}
	mmsiSubscribers[mmsi][sid] = struct{}{}
	mmsiSubscribersMu.Unlock()
}

func unsubscribe(sid socketio.SocketId, mmsi string) {
	clientSubscriptionsMu.Lock()
	delete(clientSubscriptions[sid], mmsi)
	clientSubscriptionsMu.Unlock()

	mmsiSubscribersMu.Lock()
	if s := mmsiSubscribers[mmsi]; s != nil {
		delete(s, sid)
		if len(s) == 0 {
			delete(mmsiSubscribers, mmsi)
		}
	}
	mmsiSubscribersMu.Unlock()
}

// broadcastRecord emits a freshly received record to every socket
// subscribed to its MMSI, whether or not persisting it succeeded.
func broadcastRecord(rec *pipeline.Record) {
	mmsiSubscribersMu.RLock()
	subs := mmsiSubscribers[rec.MMSI]
	mmsiSubscribersMu.RUnlock()
	if len(subs) == 0 {
		return
	}

	connectedClientsMu.RLock()
	defer connectedClientsMu.RUnlock()
	for sid := range subs {
		sock, ok := connectedClients[sid]
		if !ok {
			continue
		}
		sock.Emit("ais_data", rec)
	}
}
