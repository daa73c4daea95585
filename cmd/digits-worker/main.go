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
	"github.com/gorgonia/digits/worker"
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	conf := digits.DefaultConfig()
	addr := flag.String("addr", ":8081", "listen address")
	flag.IntVar(&conf.NNConf.Hidden1, "hidden1", conf.NNConf.Hidden1, "first hidden layer width")
	flag.IntVar(&conf.NNConf.Hidden2, "hidden2", conf.NNConf.Hidden2, "second hidden layer width")
	flag.IntVar(&conf.NNConf.BatchSize, "batch", conf.NNConf.BatchSize, "minibatch size")
	flag.Float64Var(&conf.NNConf.LearnRate, "lr", conf.NNConf.LearnRate, "learn rate")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	logger.Println(conf.Name, "worker",
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"NumCPU", runtime.NumCPU(),
		"CPU", cpuid.CPU.BrandName,
		"PhysicalCores", cpuid.CPU.PhysicalCores,
		"AVX2", cpuid.CPU.Supports(cpuid.AVX2),
	)
	if !conf.IsValid() {
		logger.Fatalf("invalid configuration %+v", conf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/worker", worker.Handler(func() *worker.Worker { return digits.NewWorker(conf) }))
	srv := &http.Server{Addr: *addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("ws://localhost%s/worker", *addr)
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
	if err := g.Wait(); err != nil {
		logger.Fatalf("%+v", err)
	}
}
