package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeProceedWordInput = 101
	MsgTypeReturnToSetup    = 102
	MsgTypeAddWord          = 103
	MsgTypeStartGame        = 104
	MsgTypeBeginRound       = 105
	MsgTypeBeginNextTurn    = 106
	MsgTypeWordGuessed      = 107
	MsgTypeSkipWord         = 108
	MsgTypeResetGame        = 109
	MsgTypeLoadCatalog      = 202
	MsgTypeAnalytics        = 306
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	log.Println("Sending word-input request...")
	if err := send(c, MsgTypeProceedWordInput, []byte{}); err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Commands: add <word> | load <catalog> | start | begin | next | guess | skip | stats | reset")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}

			var msgID uint16
			var payload []byte

			switch {
			case strings.HasPrefix(text, "add "):
				msgID = MsgTypeAddWord
				payload, _ = json.Marshal(map[string]string{"text": strings.TrimPrefix(text, "add ")})
			case strings.HasPrefix(text, "load "):
				msgID = MsgTypeLoadCatalog
				payload, _ = json.Marshal(map[string]string{"name": strings.TrimPrefix(text, "load ")})
			case text == "start":
				msgID = MsgTypeStartGame
			case text == "begin":
				msgID = MsgTypeBeginRound
			case text == "next":
				msgID = MsgTypeBeginNextTurn
			case text == "guess":
				msgID = MsgTypeWordGuessed
			case text == "skip":
				msgID = MsgTypeSkipWord
			case text == "stats":
				msgID = MsgTypeAnalytics
			case text == "reset":
				msgID = MsgTypeResetGame
			default:
				log.Printf("Unknown command: %q", text)
				continue
			}

			if err := send(c, msgID, payload); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", text)
		}
	}
}
