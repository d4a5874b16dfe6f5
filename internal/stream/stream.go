// Package stream exposes the demo director over a plain WebSocket: the
// client reports stage geometry and user interaction, the server answers
// with render frames.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aarongantt/tangent-landing/internal/demo"
	"github.com/aarongantt/tangent-landing/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Marketing site is public, allow all origins
	},
}

// Event represents a WebSocket message in either direction.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// helloPayload is the first message a client must send: the stage it built.
type helloPayload struct {
	Elements struct {
		Article    bool `json:"article"`
		Anchor     bool `json:"anchor"`
		Chips      bool `json:"chips"`
		PanelShell bool `json:"panelShell"`
		Panel      bool `json:"panel"`
		Stream     bool `json:"stream"`
	} `json:"elements"`
	AnchorText string      `json:"anchorText"`
	Layout     demo.Layout `json:"layout"`
}

type stageVisiblePayload struct {
	Ratio float64 `json:"ratio"`
}

type chipClickPayload struct {
	ChipID string `json:"chipId"`
}

type pointerPayload struct {
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type faqSelectPayload struct {
	FaqID string `json:"faqId"`
}

type viewportPayload struct {
	Layout demo.Layout `json:"layout"`
}

type scrollPayload struct {
	Top    float64    `json:"top"`
	Anchor *demo.Rect `json:"anchor"`
}

// Server speaks the demo stream protocol. Each connection owns its own
// director; nothing is shared between demo stages.
type Server struct{}

// NewServer creates a demo stream server.
func NewServer() *Server {
	return &Server{}
}

// HandleWebSocket upgrades the connection and runs one demo session on it.
// GET /v1/demo/stream
func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	director, err := s.handshake(conn)
	if err != nil {
		logger.Warnf("stream: handshake rejected: %v", err)
		return
	}
	director.Start()
	defer director.Stop()

	frames, cancel := director.Subscribe()
	defer cancel()

	// Writer goroutine forwards frames until the subscription is cancelled
	// or a write fails.
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		writeFrames(conn, frames, done)
	}()

	s.readLoop(conn, director)
	close(done)
	wg.Wait()
}

// handshake reads the hello message and builds the director for this stage.
// A stage missing any core element aborts the session entirely.
func (s *Server) handshake(conn *websocket.Conn) (*demo.Director, error) {
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		return nil, err
	}
	if event.Type != "hello" {
		_ = conn.WriteJSON(Event{Type: "error", Data: errorData("expected hello")})
		return nil, demo.ErrMissingStageElement
	}

	var hello helloPayload
	if err := json.Unmarshal(event.Data, &hello); err != nil {
		_ = conn.WriteJSON(Event{Type: "error", Data: errorData("malformed hello")})
		return nil, err
	}

	director, err := demo.NewDirector(demo.Config{
		Stage: demo.Stage{
			HasArticle:    hello.Elements.Article,
			HasAnchor:     hello.Elements.Anchor,
			HasChips:      hello.Elements.Chips,
			HasPanelShell: hello.Elements.PanelShell,
			HasPanel:      hello.Elements.Panel,
			HasStream:     hello.Elements.Stream,
			AnchorText:    hello.AnchorText,
			Layout:        hello.Layout,
		},
	})
	if err != nil {
		_ = conn.WriteJSON(Event{Type: "error", Data: errorData(err.Error())})
		return nil, err
	}
	return director, nil
}

// readLoop translates client events into director inputs until the
// connection drops.
func (s *Server) readLoop(conn *websocket.Conn, director *demo.Director) {
	for {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnf("stream: read failed: %v", err)
			}
			return
		}

		in, ok := decodeInput(event)
		if !ok {
			logger.Debugf("stream: unknown event type %q", event.Type)
			continue
		}
		if in == nil {
			// header-click is stamped by the director's clock.
			director.HeaderClicked()
			continue
		}
		director.Post(in)
	}
}

// decodeInput maps one client event to a director input. The nil, true
// return marks events the caller must post through a dedicated method.
func decodeInput(event Event) (demo.Input, bool) {
	switch event.Type {
	case "stage-visible":
		var p stageVisiblePayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdStageVisible{Ratio: p.Ratio}, true

	case "chip-click":
		var p chipClickPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdChipClick{ChipID: p.ChipID}, true

	case "pointer-down":
		var p pointerPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		target := demo.TargetPanelHeader
		if p.Target == "resize-handle" {
			target = demo.TargetResizeHandle
		}
		return demo.CmdPointerDown{Target: target, X: p.X, Y: p.Y}, true

	case "pointer-move":
		var p pointerPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdPointerMove{X: p.X, Y: p.Y}, true

	case "pointer-up":
		return demo.CmdPointerUp{}, true

	case "mouse-move":
		return demo.CmdUserMouseMove{}, true

	case "input-focus":
		return demo.CmdInputFocus{}, true

	case "outside-click":
		return demo.CmdOutsideClick{}, true

	case "faq-select":
		var p faqSelectPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdFaqSelect{FaqID: p.FaqID}, true

	case "close-click":
		return demo.CmdCloseClicked{}, true

	case "minimize-click":
		return demo.CmdMinimizeClicked{}, true

	case "header-click":
		return nil, true

	case "viewport":
		var p viewportPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdViewportResized{Layout: p.Layout}, true

	case "scroll":
		var p scrollPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return nil, false
		}
		return demo.CmdScroll{Top: p.Top, Anchor: p.Anchor}, true
	}
	return nil, false
}

// writeFrames forwards director frames to the client.
func writeFrames(conn *websocket.Conn, frames <-chan demo.Frame, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			data, err := json.Marshal(frame)
			if err != nil {
				logger.Errorf("stream: frame encode failed: %v", err)
				continue
			}
			if err := conn.WriteJSON(Event{Type: "frame", Data: data}); err != nil {
				return
			}
		}
	}
}

func errorData(msg string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return data
}
