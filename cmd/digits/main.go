package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorgonia/digits"
	"github.com/gorgonia/digits/internal/web"
	"github.com/gorgonia/digits/render/gif"
	"github.com/gorgonia/digits/render/mjpeg"
	"github.com/gorgonia/digits/worker"
	"golang.org/x/sync/errgroup"
)

var (
	flgAddr    string
	flgWorker  string
	flgRecord  string
	flgStats   string
	flgScale   int
	flgTimeout time.Duration
)

func main() {
	conf := digits.DefaultConfig()
	flag.StringVar(&flgAddr, "addr", ":8080", "listen address")
	flag.StringVar(&flgWorker, "worker", "", "websocket URL of a remote worker (e.g. ws://localhost:8081/worker). Empty runs the worker in process")
	flag.StringVar(&flgRecord, "record", "", "write every shown image to this GIF on exit")
	flag.StringVar(&flgStats, "stats", "", "write epoch statistics to this CSV on exit")
	flag.IntVar(&flgScale, "scale", 10, "enlargement of images sent to the page and the stream")
	flag.DurationVar(&flgTimeout, "timeout", conf.Timeout, "how long to wait on a prepare or train request")
	flag.IntVar(&conf.NNConf.Hidden1, "hidden1", conf.NNConf.Hidden1, "first hidden layer width")
	flag.IntVar(&conf.NNConf.Hidden2, "hidden2", conf.NNConf.Hidden2, "second hidden layer width")
	flag.IntVar(&conf.NNConf.BatchSize, "batch", conf.NNConf.BatchSize, "minibatch size")
	flag.Float64Var(&conf.NNConf.LearnRate, "lr", conf.NNConf.LearnRate, "learn rate")
	flag.Parse()
	conf.Timeout = flgTimeout
	conf.Record = flgRecord

	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	logger.Println(conf.Name,
		"RuntimeVersion", runtime.Version(),
		"NumCPU", runtime.NumCPU(),
		"Worker", flgWorker,
	)
	if !conf.IsValid() {
		logger.Fatalf("invalid configuration %+v", conf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf); err != nil {
		logger.Fatalf("%+v", err)
	}
}

func newBridge(conf digits.Config) web.BridgeFactory {
	if flgWorker != "" {
		return func(ctx context.Context) (worker.Bridge, error) {
			r, err := worker.Dial(ctx, flgWorker)
			if err != nil {
				return nil, err
			}
			return r, nil
		}
	}
	return func(ctx context.Context) (worker.Bridge, error) {
		return worker.NewLocal(ctx, digits.NewWorker(conf)), nil
	}
}

func run(ctx context.Context, conf digits.Config) error {
	s := web.New(conf, newBridge(conf))
	s.Scale = flgScale

	stream := mjpeg.NewEncoder(flgScale)
	s.Stream = stream
	s.Frames = append(s.Frames, stream)

	var recording *gif.Encoder
	if conf.Record != "" {
		f, err := os.Create(conf.Record)
		if err != nil {
			return err
		}
		defer f.Close()
		recording = gif.NewGifEncoder(f, flgScale)
		s.Frames = append(s.Frames, recording)
	}

	srv := &http.Server{Addr: flgAddr, Handler: s}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("http://localhost%s", flgAddr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err := g.Wait()

	if recording != nil {
		log.Printf("Writing %d frames to %s", recording.Len(), conf.Record)
		if ferr := recording.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if flgStats != "" {
		if serr := s.Stats.Dump(flgStats); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}
