// Package web serves the demo page and hosts one controller per page load.
package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorgonia/digits"
	"github.com/gorgonia/digits/ui"
	"github.com/gorgonia/digits/worker"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{} // use default options

// BridgeFactory connects a new session to a worker.
type BridgeFactory func(ctx context.Context) (worker.Bridge, error)

// Server is the HTTP surface of the demo.
type Server struct {
	Conf      digits.Config
	NewBridge BridgeFactory
	Stats     *digits.Statistics

	// Scale enlarges the 28x28 images sent to the page.
	Scale int
	// Frames receive every image shown by any session, e.g. an MJPEG
	// stream or a GIF recording.
	Frames []FrameEncoder
	// Stream, if set, is served at /stream.
	Stream http.Handler

	mux      *http.ServeMux
	sessions int64
}

// New creates a server whose sessions each get a bridge from newBridge.
func New(conf digits.Config, newBridge BridgeFactory) *Server {
	s := &Server{
		Conf:      conf,
		NewBridge: newBridge,
		Stats:     digits.MakeStatistics(),
		Scale:     1,
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.index)
	s.mux.HandleFunc("/ws", s.session)
	s.mux.HandleFunc("/stream", s.stream)
	s.mux.HandleFunc("/stats.csv", s.stats)
	s.mux.HandleFunc("/model.dot", s.model)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, s.Conf); err != nil {
		log.Printf("Write to HTTP output using template with error: %v", err)
	}
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	if s.Stream == nil {
		http.NotFound(w, r)
		return
	}
	s.Stream.ServeHTTP(w, r)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	if err := s.Stats.Write(w); err != nil {
		log.Printf("stats: %v", err)
	}
}

func (s *Server) model(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	fmt.Fprint(w, s.Conf.NNConf.ToDot())
}

// unavailable stands in for a bridge that could not be created.
type unavailable struct{ err error }

func (u unavailable) Post(worker.Request) error { return u.err }

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &session{
		id:      fmt.Sprintf("session-%d", atomic.AddInt64(&s.sessions, 1)),
		conn:    c,
		view:    newPageView(s.Scale, s.Frames...),
		timeout: s.Conf.Timeout,
	}
	log.Printf("%s: opened", sess.id)
	defer log.Printf("%s: closed", sess.id)

	bridge, err := s.NewBridge(ctx)
	if err != nil {
		err = errors.WithMessage(err, "no worker")
		sess.ctl = ui.New(sess.view, unavailable{err})
		sess.ctl.Unavailable(err.Error())
	} else {
		defer bridge.Close()
		sess.bridge = bridge
		sess.ctl = ui.New(sess.view, bridge)
	}
	sess.ctl.OnEpoch = func(e worker.TrainedEpoch) { s.Stats.Update(sess.id, e) }

	if err := sess.run(ctx); err != nil && err != context.Canceled {
		log.Printf("%s: %v", sess.id, err)
	}
}

var page = template.Must(template.New("page").Parse(pageTemplate))
