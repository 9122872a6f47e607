package notifier

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types
const (
	EventReservationConfirmed = "reservation_confirmed"
	EventWaitlistAdded        = "waitlist_added"
	EventTableReady           = "table_ready"
	EventTableCreate          = "table_create"
	EventTableUpdate          = "table_update"
	EventTableDelete          = "table_delete"
	EventQueueUpdate          = "queue_update"
	EventDashboardUpdate      = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard staf (admin, staff) dan
// menyiarkan event ke semuanya. Pengiriman fire-and-forget: client yang
// gagal ditulisi dilewati, error tidak pernah naik ke pemanggil.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastDashboardUpdate -> ringkasan kondisi lantai berubah
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// BroadcastQueueUpdate -> papan antrian berubah
func BroadcastQueueUpdate(data interface{}) {
	broadcast(Message{
		Event: EventQueueUpdate,
		Data:  data,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
