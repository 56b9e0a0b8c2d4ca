// Package playback plays encoded cue clips on the local machine.
//
// Two backends implement sequencer.Output: MPV runs one mpv process per clip
// and PortAudio decodes the MP3 in process and writes PCM to the default
// output device.
package playback

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mrlokans/wortschatz/internal/sequencer"
)

const (
	BackendMPV       = "mpv"
	BackendPortAudio = "portaudio"
)

// Backend is an Output that owns process-wide resources.
type Backend interface {
	sequencer.Output
	Close() error
}

// New creates the named backend.
func New(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendMPV:
		return NewMPV(DefaultMPVCommand), nil
	case BackendPortAudio:
		return NewPortAudio()
	default:
		return nil, fmt.Errorf("unknown playback backend %q (want %s or %s)", name, BackendMPV, BackendPortAudio)
	}
}

// handle tracks one playing clip. stop is called at most once.
type handle struct {
	done     chan struct{}
	stopOnce sync.Once
	stopFn   func()

	mu  sync.Mutex
	err error
}

func newHandle(stop func()) *handle {
	return &handle{
		done:   make(chan struct{}),
		stopFn: stop,
	}
}

func (h *handle) Done() <-chan struct{} {
	return h.done
}

func (h *handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *handle) Stop() {
	h.stopOnce.Do(h.stopFn)
}

// finish records the outcome and releases waiters.
func (h *handle) finish(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
	close(h.done)
}
