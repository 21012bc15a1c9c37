// SPDX-License-Identifier: Unlicense OR MIT

/*
Package remote receives touches from a companion device.

A companion, typically a phone running a small web page or app,
connects to the websocket endpoint and sends one JSON message per
frame of its own:

	{"seq": 12, "touches": [{"id": 0, "phase": "moved", "x": 120, "y": 80, "dx": 2, "dy": -1}]}

Phases are "began", "moved", "stationary", "ended" and "canceled".
The Server queues received frames and hands out one per host frame,
so the touch edges of every companion frame reach the host. When
the companion is slower than the host the previous frame is repeated
with its touches Stationary. When it disconnects, its active touches
are canceled.

The server also exposes the remote touch toggle of a mode.Selector:

	GET  /mode                 current mode as JSON
	POST /mode/remote/toggle   flip the toggle
*/
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"

	"touchutil.org/f32"
	"touchutil.org/internal/config"
	"touchutil.org/io/input"
	"touchutil.org/io/mode"
	"touchutil.org/io/pointer"
)

var logger = golog.Child("[remote]")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxMessageSize bounds a single companion frame.
const maxMessageSize = 64 << 10

// Message is one frame of companion touches.
type Message struct {
	Seq     uint64  `json:"seq"`
	Touches []Touch `json:"touches"`
}

// Touch is a touch as sent by the companion.
type Touch struct {
	ID    pointer.ID `json:"id"`
	Phase string     `json:"phase"`
	X     float32    `json:"x"`
	Y     float32    `json:"y"`
	DX    float32    `json:"dx"`
	DY    float32    `json:"dy"`
}

// ModeState is the JSON form of the mode endpoints.
type ModeState struct {
	Touch   bool   `json:"touch"`
	Remote  bool   `json:"remote"`
	Native  bool   `json:"native"`
	Menu    string `json:"menu"`
	Checked bool   `json:"checked"`
}

// Server is an input.Source of companion touches. It never reports
// mouse input. Frame and the Source methods must be called from the
// polling goroutine; everything else is safe for concurrent use.
type Server struct {
	cfg      config.Remote
	sel      *mode.Selector
	upgrader websocket.Upgrader
	engine   *gin.Engine

	mu      sync.Mutex
	queue   [][]pointer.Touch
	clients int
	dropped int

	cur input.Snapshot
}

// NewServer returns a server configured by cfg. Unset fields and a
// queue bound below 1 take their default values. If sel is not nil the
// mode endpoints are served for it.
func NewServer(cfg config.Remote, sel *mode.Selector) *Server {
	def := config.Default().Remote
	if cfg.Listen == "" {
		cfg.Listen = def.Listen
	}
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.Queue < 1 {
		cfg.Queue = def.Queue
	}
	s := &Server{
		cfg: cfg,
		sel: sel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger)
	e.GET(cfg.Path, s.serveTouches)
	if sel != nil {
		e.GET("/mode", s.getMode)
		e.POST("/mode/remote/toggle", s.toggleRemote)
	}
	s.engine = e
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("remote: listen %s: %w", s.cfg.Listen, err)
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	logger.Infof("listening on %s%s", ln.Addr(), s.cfg.Path)
	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("remote: shutdown: %w", err)
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote: serve %s: %w", s.cfg.Listen, err)
	}
}

// Push queues a companion frame. It returns an error and queues
// nothing if a touch has an unknown phase.
func (s *Server) Push(m Message) error {
	_, err := s.push(m)
	return err
}

// push queues m and returns its touches.
func (s *Server) push(m Message) ([]pointer.Touch, error) {
	touches := make([]pointer.Touch, len(m.Touches))
	for i, t := range m.Touches {
		var p pointer.Phase
		if err := p.UnmarshalText([]byte(t.Phase)); err != nil {
			return nil, fmt.Errorf("remote: frame %d: touch %d: %w", m.Seq, t.ID, err)
		}
		touches[i] = pointer.Touch{
			ID:       t.ID,
			Phase:    p,
			Position: f32.Pt(t.X, t.Y),
			Delta:    f32.Pt(t.DX, t.DY),
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueue(touches)
	return touches, nil
}

func (s *Server) enqueue(touches []pointer.Touch) {
	if len(s.queue) >= s.cfg.Queue {
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.dropped++
		logger.Warnf("frame queue full, dropped %d frames so far", s.dropped)
	}
	s.queue = append(s.queue, touches)
}

// Frame advances to the next companion frame and returns it.
func (s *Server) Frame() input.Snapshot {
	s.mu.Lock()
	var touches []pointer.Touch
	fresh := len(s.queue) > 0
	if fresh {
		touches = s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
	}
	s.mu.Unlock()

	if !fresh {
		touches = staleTouches(s.cur.Touches)
	}
	s.cur = input.Snapshot{Touches: touches}
	return s.cur
}

func (s *Server) TouchCount() int {
	return s.cur.TouchCount()
}

func (s *Server) Touch(i int) pointer.Touch {
	return s.cur.Touch(i)
}

// Button always reports a released button.
func (s *Server) Button() pointer.Button {
	return pointer.Button{}
}

// Clients returns the number of connected companions.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

// staleTouches repeats a frame for a host frame without companion
// input: ended touches are gone, the rest rest in place.
func staleTouches(prev []pointer.Touch) []pointer.Touch {
	var touches []pointer.Touch
	for _, t := range prev {
		if !t.Phase.Active() {
			continue
		}
		t.Phase = pointer.Stationary
		t.Delta = f32.Point{}
		touches = append(touches, t)
	}
	return touches
}

func cancelTouches(prev []pointer.Touch) []pointer.Touch {
	touches := staleTouches(prev)
	for i := range touches {
		touches[i].Phase = pointer.Canceled
	}
	return touches
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.Origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, o := range s.cfg.Origins {
		if o == origin {
			return true
		}
	}
	logger.Warnf("rejected companion from origin %q", origin)
	return false
}

func (s *Server) serveTouches(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already replied.
		logger.Debugf("upgrade %s: %v", c.Request.RemoteAddr, err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	logger.Infof("companion %s connected", conn.RemoteAddr())

	// last is the most recent frame of this companion. Only its
	// touches are canceled on disconnect.
	var last []pointer.Touch
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("companion %s: %v", conn.RemoteAddr(), err)
			}
			break
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			logger.Warnf("companion %s: malformed frame: %v", conn.RemoteAddr(), err)
			continue
		}
		touches, err := s.push(m)
		if err != nil {
			logger.Warnf("companion %s: %v", conn.RemoteAddr(), err)
			continue
		}
		last = touches
	}

	s.mu.Lock()
	s.clients--
	if canceled := cancelTouches(last); len(canceled) > 0 {
		s.enqueue(canceled)
	}
	s.mu.Unlock()
	logger.Infof("companion %s disconnected", conn.RemoteAddr())
}

func (s *Server) modeState() ModeState {
	item := s.sel.MenuItem()
	return ModeState{
		Touch:   s.sel.TouchMode(),
		Remote:  s.sel.Remote(),
		Native:  s.sel.Native(),
		Menu:    item.Path,
		Checked: item.Checked,
	}
}

func (s *Server) getMode(c *gin.Context) {
	c.JSON(http.StatusOK, s.modeState())
}

func (s *Server) toggleRemote(c *gin.Context) {
	on := s.sel.ToggleRemote()
	logger.Infof("remote touch %s", onOff(on))
	c.JSON(http.StatusOK, s.modeState())
}

func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	logger.Debugf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
