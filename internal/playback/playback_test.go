package playback

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/sequencer"
)

var (
	_ sequencer.Output      = (*MPV)(nil)
	_ sequencer.Output      = (*PortAudio)(nil)
	_ sequencer.AudioHandle = (*handle)(nil)
)

// fakePlayer writes a shell script standing in for mpv.
func fakePlayer(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-mpv")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func waitDone(t *testing.T, h sequencer.AudioHandle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not finish")
	}
}

func TestMPV_PassesSpeedAndClip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args")
	script := fakePlayer(t, `for a in "$@"; do echo "$a" >> `+out+`; done
for a in "$@"; do f="$a"; done
cat "$f" >> `+out)

	player := NewMPV(script)
	h, err := player.Play(context.Background(), []byte("clip-bytes"), 0.75)
	require.NoError(t, err)
	waitDone(t, h)
	assert.NoError(t, h.Err())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Contains(t, lines, "--no-video")
	assert.Contains(t, lines, "--speed=0.75")
	assert.Equal(t, "clip-bytes", lines[len(lines)-1])

	clipPath := lines[len(lines)-2]
	_, err = os.Stat(clipPath)
	assert.True(t, os.IsNotExist(err), "temporary clip is removed")
}

func TestMPV_ReportsFailure(t *testing.T) {
	player := NewMPV(fakePlayer(t, "exit 3"))

	h, err := player.Play(context.Background(), []byte("clip"), 1.0)
	require.NoError(t, err)
	waitDone(t, h)

	assert.ErrorContains(t, h.Err(), "mpv exited")
}

func TestMPV_MissingBinary(t *testing.T) {
	player := NewMPV(filepath.Join(t.TempDir(), "no-such-player"))

	_, err := player.Play(context.Background(), []byte("clip"), 1.0)

	assert.ErrorContains(t, err, "failed to start player")
}

func TestMPV_Stop(t *testing.T) {
	player := NewMPV(fakePlayer(t, "exec sleep 30"))

	h, err := player.Play(context.Background(), []byte("clip"), 1.0)
	require.NoError(t, err)

	h.Stop()
	h.Stop()
	waitDone(t, h)
	assert.NoError(t, h.Err(), "a stopped clip is not a failure")
	assert.NoError(t, player.Close())
}

func TestMPV_ContextCancel(t *testing.T) {
	player := NewMPV(fakePlayer(t, "exec sleep 30"))
	ctx, cancel := context.WithCancel(context.Background())

	h, err := player.Play(ctx, []byte("clip"), 1.0)
	require.NoError(t, err)

	cancel()
	waitDone(t, h)
	assert.NoError(t, h.Err())
}

func TestMPV_CloseKillsPlayingClips(t *testing.T) {
	player := NewMPV(fakePlayer(t, "exec sleep 30"))

	h, err := player.Play(context.Background(), []byte("clip"), 1.0)
	require.NoError(t, err)

	require.NoError(t, player.Close())
	waitDone(t, h)
}

func TestNew(t *testing.T) {
	backend, err := New("MPV")
	require.NoError(t, err)
	assert.IsType(t, &MPV{}, backend)

	backend, err = New("")
	require.NoError(t, err)
	assert.IsType(t, &MPV{}, backend)

	_, err = New("winamp")
	assert.ErrorContains(t, err, "unknown playback backend")
}

func TestBytesToSamples(t *testing.T) {
	samples := bytesToSamples([]byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80, 0x7f})

	assert.Equal(t, []int16{1, -1, -32768}, samples)
}

func TestResample(t *testing.T) {
	stereo := []int16{0, 0, 100, 100, 200, 200, 300, 300}

	t.Run("unit rate is a no-op", func(t *testing.T) {
		assert.Equal(t, stereo, resample(stereo, 2, 1.0))
	})

	t.Run("slower rate stretches", func(t *testing.T) {
		out := resample(stereo, 2, 0.5)
		require.Len(t, out, 16)
		assert.Equal(t, []int16{0, 0, 50, 50, 100, 100, 150, 150}, out[:8])
	})

	t.Run("faster rate shrinks", func(t *testing.T) {
		out := resample(stereo, 2, 2.0)
		assert.Equal(t, []int16{0, 0, 200, 200}, out)
	})
}

func TestDecodeMP3_Invalid(t *testing.T) {
	_, _, err := decodeMP3([]byte("not an mp3"))

	assert.ErrorContains(t, err, "decode mp3")
}
