package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// Event types pushed to connected POS screens.
const (
	EventTableOpen       = "table_open"
	EventTableClose      = "table_close"
	EventTablesRefreshed = "tables_refreshed"
	EventCheckoutSuccess = "checkout_success"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// posHub holds every connected POS screen and pushes table/checkout
// events so the table grid updates without waiting for the next poll.
type posHub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = posHub{
	clients: make(map[*websocket.Conn]struct{}),
}

// RegisterClient adds a screen connection to the set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

// UnregisterClient drops and closes a screen connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableOpen announces a table going into play.
func BroadcastTableOpen(table models.Table) {
	broadcast(Message{Event: EventTableOpen, Data: table})
}

// BroadcastTableClose announces a table being released.
func BroadcastTableClose(table models.Table) {
	broadcast(Message{Event: EventTableClose, Data: table})
}

// BroadcastTablesRefreshed tells screens a fresh snapshot has been
// applied and they should re-read the table list.
func BroadcastTablesRefreshed() {
	broadcast(Message{Event: EventTablesRefreshed, Data: nil})
}

// BroadcastCheckoutSuccess pushes a completed transaction to the screens.
func BroadcastCheckoutSuccess(txn models.Transaction) {
	broadcast(Message{Event: EventCheckoutSuccess, Data: txn})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling hub message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending hub message: %v", err)
			continue
		}
	}
}
