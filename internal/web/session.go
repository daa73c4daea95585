package web

import (
	"context"
	"log"
	"time"

	"github.com/gorgonia/digits/ui"
	"github.com/gorgonia/digits/worker"
	"github.com/gorilla/websocket"
)

// event is a user interaction reported by the page.
type event struct {
	Click    string `json:"click,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
}

// session is one page load: a controller and its bridge, driven from a
// single goroutine.
type session struct {
	id      string
	conn    *websocket.Conn
	ctl     *ui.Controller
	view    *pageView
	bridge  worker.Bridge
	timeout time.Duration
}

func (s *session) readEvents(ctx context.Context, events chan<- event) {
	defer close(events)
	for {
		var ev event
		if err := s.conn.ReadJSON(&ev); err != nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) apply(ev event) {
	if ev.Click != "" {
		ctl, err := ui.ParseControl(ev.Click)
		if err != nil {
			log.Printf("%s: %v", s.id, err)
			return
		}
		if err := s.ctl.Click(ctl); err != nil {
			log.Printf("%s: click %v: %v", s.id, ctl, err)
		}
	}
	switch ev.ViewMode {
	case "negative":
		s.ctl.SetViewMode(true)
	case "positive":
		s.ctl.SetViewMode(false)
	}
}

func (s *session) flush() error {
	msg, ok := s.view.take()
	if !ok {
		return nil
	}
	return s.conn.WriteJSON(msg)
}

// waiting reports whether the session is waiting on the worker for
// something other than an image.
func (s *session) waiting() bool {
	return s.ctl.Busy() || s.ctl.Phase() == ui.Unready
}

// run is the session's event loop. Only run touches the controller.
func (s *session) run(ctx context.Context) error {
	events := make(chan event)
	go s.readEvents(ctx, events)

	var responses <-chan worker.Response
	if s.bridge != nil {
		responses = s.bridge.Responses()
	}

	var timer *time.Timer
	var deadline <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		switch {
		case s.waiting() && deadline == nil:
			timer = time.NewTimer(s.timeout)
			deadline = timer.C
		case !s.waiting() && deadline != nil:
			timer.Stop()
			deadline = nil
		}
		if err := s.flush(); err != nil {
			return err
		}

		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.apply(ev)
		case resp, ok := <-responses:
			if !ok {
				responses = nil
				s.ctl.Unavailable("worker stopped")
				continue
			}
			s.ctl.Handle(resp)
		case <-deadline:
			deadline = nil
			s.ctl.Unavailable("timed out")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
