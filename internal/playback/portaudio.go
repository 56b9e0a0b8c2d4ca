package playback

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"

	"github.com/mrlokans/wortschatz/internal/sequencer"
)

const (
	outputChannels  = 2
	framesPerBuffer = 1024
)

// PortAudio decodes clips with go-mp3 and writes them to the default output
// device. Rates other than 1.0 are applied by resampling, which also shifts
// the pitch.
type PortAudio struct {
	// streams serializes device access; a new clip waits for the old
	// stream to close.
	streams sync.Mutex
}

// NewPortAudio initializes the PortAudio library. Close terminates it.
func NewPortAudio() (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &PortAudio{}, nil
}

func (p *PortAudio) Close() error {
	return portaudio.Terminate()
}

// Play decodes the whole clip before returning so decode errors surface
// immediately; the device is driven from a separate goroutine.
func (p *PortAudio) Play(ctx context.Context, clip []byte, rate float64) (sequencer.AudioHandle, error) {
	samples, sampleRate, err := decodeMP3(clip)
	if err != nil {
		return nil, err
	}
	samples = resample(samples, outputChannels, rate)

	stop := make(chan struct{})
	h := newHandle(func() { close(stop) })

	go func() {
		h.finish(p.stream(ctx, stop, samples, sampleRate))
	}()

	return h, nil
}

func (p *PortAudio) stream(ctx context.Context, stop <-chan struct{}, samples []int16, sampleRate int) error {
	p.streams.Lock()
	defer p.streams.Unlock()

	buffer := make([]int16, framesPerBuffer*outputChannels)
	stream, err := portaudio.OpenDefaultStream(0, outputChannels, float64(sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start output stream: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(samples); offset += len(buffer) {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}

		n := copy(buffer, samples[offset:])
		clear(buffer[n:])

		if err := stream.Write(); err != nil {
			if errors.Is(err, portaudio.OutputUnderflowed) {
				continue
			}
			log.Printf("[PLAYER] Error writing audio: %v", err)
			return fmt.Errorf("write output stream: %w", err)
		}
	}
	return nil
}

// decodeMP3 returns interleaved 16-bit stereo samples and the sample rate.
func decodeMP3(clip []byte) ([]int16, int, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(clip))
	if err != nil {
		return nil, 0, fmt.Errorf("decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("decode mp3: %w", err)
	}
	if len(pcm) == 0 {
		return nil, 0, errors.New("decode mp3: no audio frames")
	}
	return bytesToSamples(pcm), dec.SampleRate(), nil
}

// bytesToSamples converts little-endian 16-bit PCM to samples.
func bytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples
}

// resample plays interleaved samples rate times faster using linear
// interpolation between neighbouring frames.
func resample(samples []int16, channels int, rate float64) []int16 {
	if rate <= 0 || rate == 1.0 || len(samples) < channels {
		return samples
	}

	frames := len(samples) / channels
	outFrames := int(float64(frames) / rate)
	out := make([]int16, 0, outFrames*channels)

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * rate
		base := int(pos)
		if base >= frames-1 {
			base = frames - 1
		}
		frac := pos - float64(base)
		next := base + 1
		if next >= frames {
			next = base
		}

		for ch := 0; ch < channels; ch++ {
			a := float64(samples[base*channels+ch])
			b := float64(samples[next*channels+ch])
			out = append(out, int16(a+(b-a)*frac))
		}
	}
	return out
}
