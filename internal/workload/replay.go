package workload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

type Replayer struct {
	fw      *httpx.Forwarder
	baseURL string
	out     io.Writer
	log     *slog.Logger
}

func NewReplayer(fw *httpx.Forwarder, baseURL string, out io.Writer, log *slog.Logger) *Replayer {
	if log == nil {
		log = slog.Default()
	}
	return &Replayer{fw: fw, baseURL: strings.TrimRight(baseURL, "/"), out: out, log: log}
}

// Run sends every request in r in order, printing "METHOD URL [status]".
// Bad lines and failed exchanges are reported and skipped. It returns the
// number of requests sent.
func (p *Replayer) Run(ctx context.Context, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sent, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		req, err := ParseLine(sc.Text())
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			p.log.Warn("skipping workload line", "line", lineNo, "err", err)
			continue
		}

		url := p.baseURL + req.Path
		res, err := p.fw.Do(ctx, req.Method, url, req.Body)
		sent++
		if err != nil {
			fmt.Fprintf(p.out, "%s %s [failed]\n", req.Method, url)
			p.log.Warn("request failed", "line", lineNo, "err", err)
			continue
		}
		fmt.Fprintf(p.out, "%s %s [%d]\n", req.Method, url, res.Status)
	}
	return sent, sc.Err()
}
