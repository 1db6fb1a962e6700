package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/brew-bliss-cafe/models"
)

// Event types pushed to dashboard clients
const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventReservationDelete = "reservation_delete"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard dan menyiarkan perubahan reservasi.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservationCreate -> new reservation landed.
func BroadcastReservationCreate(r models.Reservation) {
	broadcast(Message{Event: EventReservationCreate, Data: r})
}

// BroadcastReservationUpdate -> reservation changed (fields or status).
func BroadcastReservationUpdate(r models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: r})
}

// BroadcastReservationDelete -> reservation removed.
func BroadcastReservationDelete(id uint) {
	broadcast(Message{
		Event: EventReservationDelete,
		Data:  map[string]interface{}{"id": id},
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending event to client: %v", err)
		}
	}
}
