package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/mrlokans/wortschatz/internal/sequencer"
)

// DefaultMPVCommand is the player binary looked up on PATH.
const DefaultMPVCommand = "mpv"

// MPV plays each clip with a short-lived mpv process.
type MPV struct {
	command string

	mu    sync.Mutex
	procs map[*exec.Cmd]struct{}
}

func NewMPV(command string) *MPV {
	if command == "" {
		command = DefaultMPVCommand
	}
	return &MPV{
		command: command,
		procs:   make(map[*exec.Cmd]struct{}),
	}
}

// Play writes the clip to a temporary file and starts mpv on it at the given
// speed. mpv keeps the pitch when the speed changes.
func (m *MPV) Play(ctx context.Context, clip []byte, rate float64) (sequencer.AudioHandle, error) {
	if rate <= 0 {
		rate = 1.0
	}

	f, err := os.CreateTemp("", "wortschatz-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create clip file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(clip); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write clip file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write clip file: %w", err)
	}

	cmd := exec.Command(m.command,
		"--no-video",
		"--really-quiet",
		"--no-terminal",
		"--speed="+strconv.FormatFloat(rate, 'f', -1, 64),
		path,
	)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to start player: %w", err)
	}

	m.track(cmd)

	var stopped bool
	var stopMu sync.Mutex
	h := newHandle(func() {
		stopMu.Lock()
		stopped = true
		stopMu.Unlock()
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			log.Printf("[PLAYER] Error killing mpv process (pid: %d): %v", cmd.Process.Pid, err)
		}
	})

	go func() {
		err := cmd.Wait()
		m.untrack(cmd)
		os.Remove(path)

		stopMu.Lock()
		wasStopped := stopped
		stopMu.Unlock()
		if wasStopped {
			err = nil
		} else if err != nil {
			err = fmt.Errorf("mpv exited: %w", err)
		}
		h.finish(err)
	}()

	go func() {
		select {
		case <-ctx.Done():
			h.Stop()
		case <-h.done:
		}
	}()

	return h, nil
}

// Close kills any clip that is still playing.
func (m *MPV) Close() error {
	m.mu.Lock()
	procs := make([]*exec.Cmd, 0, len(m.procs))
	for cmd := range m.procs {
		procs = append(procs, cmd)
	}
	m.mu.Unlock()

	for _, cmd := range procs {
		cmd.Process.Kill()
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		n := len(m.procs)
		m.mu.Unlock()
		if n == 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return errors.New("mpv processes did not exit")
}

func (m *MPV) track(cmd *exec.Cmd) {
	m.mu.Lock()
	m.procs[cmd] = struct{}{}
	m.mu.Unlock()
}

func (m *MPV) untrack(cmd *exec.Cmd) {
	m.mu.Lock()
	delete(m.procs, cmd)
	m.mu.Unlock()
}
