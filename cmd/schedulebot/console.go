package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"schedulebot/internal/domain"
)

// consoleTransport is a development stand-in for the external chat transport:
// outbound messages are printed to out, button rows as bracketed payloads.
type consoleTransport struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleTransport(out io.Writer) *consoleTransport {
	return &consoleTransport{out: out}
}

func (t *consoleTransport) Send(ctx context.Context, destination int64, text string, choices ...domain.Choice) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintf(t.out, "-> %d: %s\n", destination, text); err != nil {
		return err
	}
	for _, c := range choices {
		if _, err := fmt.Fprintf(t.out, "   %s  (send: %d btn:%s)\n", c.Label, destination, c.Intent); err != nil {
			return err
		}
	}
	return nil
}
