package worker

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{} // use default options

// Remote is a Bridge to a worker served by Handler in another process.
// Messages travel as the tagged JSON records of MarshalRequest and
// MarshalResponse.
type Remote struct {
	conn *websocket.Conn
	out  chan Response
	done chan struct{}
	once sync.Once

	mu sync.Mutex // serializes writes
}

// Dial connects to a worker endpoint such as ws://localhost:8081/worker.
func Dial(ctx context.Context, url string) (*Remote, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing worker %v", url)
	}
	r := &Remote{
		conn: conn,
		out:  make(chan Response, queueSize),
		done: make(chan struct{}),
	}
	go r.read()
	return r, nil
}

func (r *Remote) read() {
	defer close(r.out)
	for {
		_, p, err := r.conn.ReadMessage()
		if err != nil {
			return
		}
		resp, err := UnmarshalResponse(p)
		if err != nil {
			log.Printf("Remote worker: %v", err)
			continue
		}
		select {
		case r.out <- resp:
		case <-r.done:
			return
		}
	}
}

func (r *Remote) Post(req Request) error {
	b, err := MarshalRequest(req)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.WithStack(r.conn.WriteMessage(websocket.TextMessage, b))
}

func (r *Remote) Responses() <-chan Response { return r.out }

func (r *Remote) Close() error {
	r.once.Do(func() { close(r.done) })
	return r.conn.Close()
}

// Handler serves one fresh worker per websocket connection.
func Handler(newWorker func() *Worker) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		c, err := upgrader.Upgrade(rw, req, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()

		ctx, cancel := context.WithCancel(req.Context())
		defer cancel()
		in, out := newWorker().Start(ctx)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for resp := range out {
				b, err := MarshalResponse(resp)
				if err != nil {
					log.Println("write:", err)
					continue
				}
				if err = c.WriteMessage(websocket.TextMessage, b); err != nil {
					log.Println("write:", err)
					cancel()
					return
				}
			}
		}()

		for {
			_, p, err := c.ReadMessage()
			if err != nil {
				break
			}
			r, err := UnmarshalRequest(p)
			if err != nil {
				log.Println("read:", err)
				continue
			}
			select {
			case in <- r:
			case <-ctx.Done():
			}
		}
		close(in)
		cancel()
		wg.Wait()
	})
}
