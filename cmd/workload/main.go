// Command workload replays a workload file against the order service.
//
//	workload <file>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/ordenes-saga/internal/config"
	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/workload"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: workload <file>")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := httpx.NewLogger("workload", cfg.LogLevel)

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Error("open workload", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Targeting OrderService at: %s\n", cfg.OrderSvcBaseURL)
	p := workload.NewReplayer(httpx.NewForwarder(cfg.HTTPTimeout), cfg.OrderSvcBaseURL, os.Stdout, log)
	n, err := p.Run(ctx, f)
	if err != nil {
		log.Error("replay", "err", err, "sent", n)
		os.Exit(1)
	}
	log.Info("replay done", "sent", n)
}
