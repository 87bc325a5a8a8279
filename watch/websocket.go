package watch

import (
	"encoding/json"
	"net/http"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/event"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

type wsincomingmessage struct {
	messageType int
	p           []byte
	err         error
}

type wsenvelope struct {
	Type string      `json:"type"`
	Name string      `json:"name,omitempty"`
	Data interface{} `json:"data"`
}

// handleWebsocket streams committed frames and match events to one client.
// The simulation publishes on its topics regardless of who listens; this
// handler only bridges those topics onto the socket.
func (s *Service) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	m := s.match(mux.Vars(r)["id"])
	if m == nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	defer c.Close()

	clientclosedsocket := make(chan bool)
	c.SetCloseHandler(func(code int, text string) error {
		clientclosedsocket <- true
		return nil
	})

	// Read loop; mandatory to notice when the socket is closed client side.
	incomingmsg := make(chan wsincomingmessage)
	go func(client *websocket.Conn, ch chan wsincomingmessage) {
		messageType, p, err := client.ReadMessage()
		ch <- wsincomingmessage{messageType, p, err}
	}(c, incomingmsg)

	framechan := make(chan interface{})
	notify.Start(m.FrameTopic(), framechan)
	defer notify.Stop(m.FrameTopic(), framechan)

	eventchan := make(chan interface{})
	notify.Start(m.EventTopic(), eventchan)
	defer notify.Stop(m.EventTopic(), eventchan)

	// First payload is the current state, so late joiners see the match
	// immediately instead of waiting for the next frame.
	if err := s.writeEnvelope(c, wsenvelope{Type: "frame", Data: m.State()}); err != nil {
		return
	}

	for {
		select {
		case <-clientclosedsocket:
			return
		case msg := <-incomingmsg:
			if msg.err != nil {
				return
			}
		case raw := <-framechan:
			frame, ok := raw.(state.Snapshot)
			if !ok {
				continue
			}

			if err := s.writeEnvelope(c, wsenvelope{Type: "frame", Data: frame}); err != nil {
				return
			}
		case raw := <-eventchan:
			e, ok := raw.(event.Event)
			if !ok {
				continue
			}

			if err := s.writeEnvelope(c, wsenvelope{Type: "event", Name: e.EventName(), Data: e}); err != nil {
				return
			}
		}
	}
}

func (s *Service) writeEnvelope(c *websocket.Conn, env wsenvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return c.WriteMessage(websocket.TextMessage, payload)
}
