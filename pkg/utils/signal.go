package utils

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dantin/logger"
)

// Interrupt cancels its context when a termination signal happens and
// remembers which signal it was.
type Interrupt struct {
	ctx    context.Context
	cancel context.CancelFunc
	sc     chan os.Signal

	mu  sync.Mutex
	sig os.Signal
}

// NotifyInterrupt starts watching termination signals for a copy of parent.
func NotifyInterrupt(parent context.Context) *Interrupt {
	ctx, cancel := context.WithCancel(parent)
	i := &Interrupt{
		ctx:    ctx,
		cancel: cancel,
		sc:     make(chan os.Signal, 1),
	}

	// setup shutdown handler.
	signal.Notify(i.sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	go func() {
		select {
		case sig := <-i.sc:
			logger.Infof("Signal %v received, shutting down", sig)
			i.receive(sig)
		case <-ctx.Done():
		}
	}()

	return i
}

func (i *Interrupt) receive(sig os.Signal) {
	i.mu.Lock()
	i.sig = sig
	i.mu.Unlock()
	i.cancel()
}

// Context is cancelled by a termination signal or Stop.
func (i *Interrupt) Context() context.Context {
	return i.ctx
}

// Signal returns the signal which cancelled the context, nil if none did.
func (i *Interrupt) Signal() os.Signal {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.sig
}

// ExitCode returns 128+signo when interrupted by a signal, code otherwise.
func (i *Interrupt) ExitCode(code int) int {
	if sig, ok := i.Signal().(syscall.Signal); ok {
		return 128 + int(sig)
	}
	return code
}

// Stop stops watching signals and cancels the context.
func (i *Interrupt) Stop() {
	signal.Stop(i.sc)
	i.cancel()
}
