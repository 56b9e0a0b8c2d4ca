// Package sequencer drives playback of the vocabulary drill.
//
// A Controller owns the playback position, the single audio handle and the
// learned-word set. Every operation runs under one mutex; the cue sequence
// itself runs on a goroutine that re-checks its generation after each
// suspension point (existence check, playback, pause), so Stop takes effect
// before any scheduled continuation can touch the state.
package sequencer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Options configures a Controller.
type Options struct {
	// SlowRate is the playback rate of the German sentence. Default: 0.75
	SlowRate float64
	// StartIndex is the initial position in the record list.
	StartIndex int
	// Clock schedules pauses. Default: wall clock.
	Clock Clock
}

type Controller struct {
	provider Provider
	output   Output
	clock    Clock
	steps    []Step

	mu       sync.Mutex
	records  []entities.VocabularyRecord
	excluded map[int]bool
	state    State
	handle   AudioHandle
	gen      uint64
	cancel   context.CancelFunc
	subs     []chan State

	wg sync.WaitGroup
}

// New creates a controller over records. excluded holds the record indexes
// already marked as learned.
func New(records []entities.VocabularyRecord, excluded []int, provider Provider, output Output, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}

	set := make(map[int]bool, len(excluded))
	for _, idx := range excluded {
		set[idx] = true
	}

	c := &Controller{
		provider: provider,
		output:   output,
		clock:    opts.Clock,
		steps:    Steps(opts.SlowRate),
		records:  records,
		excluded: set,
	}
	if opts.StartIndex >= 0 && opts.StartIndex < len(records) {
		c.state.CurrentIndex = opts.StartIndex
	}
	return c
}

// State returns a snapshot of the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the record at the current position and whether it is learned.
func (c *Controller) Current() (entities.VocabularyRecord, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.inBoundsLocked(c.state.CurrentIndex) {
		return entities.VocabularyRecord{}, false, false
	}
	record := c.records[c.state.CurrentIndex]
	return record, c.excluded[record.Index], true
}

// Len returns the number of records.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// IsExcluded reports whether the record index is marked as learned.
func (c *Controller) IsExcluded(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.excluded[index]
}

// ExcludedCount returns how many records of the list are marked as learned.
func (c *Controller) ExcludedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, r := range c.records {
		if c.excluded[r.Index] {
			n++
		}
	}
	return n
}

// Subscribe returns a channel that receives a snapshot after every state
// change. Slow subscribers miss snapshots rather than block the controller.
func (c *Controller) Subscribe() <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 16)
	c.subs = append(c.subs, ch)
	return ch
}

// Play starts the cue sequence for the current record. It does nothing when
// a sequence is already running or the position is out of bounds.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

// Stop cancels any running sequence, releases the audio handle and disarms
// autoplay. When Stop returns the controller is idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.notifyLocked()
}

// ToggleAutoplay arms or disarms autoplay. Arming while idle starts playback.
func (c *Controller) ToggleAutoplay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.IsAutoPlay = !c.state.IsAutoPlay

	switch {
	case c.state.IsAutoPlay && c.state.Phase == PhaseIdle:
		c.playLocked()
		return
	case c.state.IsAutoPlay && c.state.Phase == PhaseSequencing:
		c.state.Phase = PhaseAutoplaying
	case !c.state.IsAutoPlay && c.state.Phase == PhaseAutoplaying:
		c.state.Phase = PhaseSequencing
	}
	c.notifyLocked()
}

// Next stops playback and moves to the next record that is not learned,
// wrapping past the end of the list.
func (c *Controller) Next() {
	c.navigate(1)
}

// Previous stops playback and moves to the previous record that is not
// learned, wrapping past the start of the list.
func (c *Controller) Previous() {
	c.navigate(-1)
}

func (c *Controller) navigate(direction int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.state.CurrentIndex = c.scanLocked(c.state.CurrentIndex, direction)
	c.notifyLocked()
}

// SetIndex stops playback and jumps to position i. Out-of-range positions are ignored.
func (c *Controller) SetIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.inBoundsLocked(i) {
		return
	}
	c.stopLocked()
	c.state.CurrentIndex = i
	c.notifyLocked()
}

// ToggleExcluded flips the learned mark of a record and persists it through
// the provider. Marking the current record stops playback and moves on as
// Next does. If the provider rejects the change the local mark is rolled
// back; the position is kept. It returns the mark now in effect.
func (c *Controller) ToggleExcluded(ctx context.Context, index int) (bool, error) {
	c.mu.Lock()
	excluded := !c.excluded[index]
	c.setExcludedLocked(index, excluded)

	if excluded && c.inBoundsLocked(c.state.CurrentIndex) && c.records[c.state.CurrentIndex].Index == index {
		c.stopLocked()
		c.state.CurrentIndex = c.scanLocked(c.state.CurrentIndex, 1)
	}
	c.notifyLocked()
	c.mu.Unlock()

	var err error
	if excluded {
		err = c.provider.AddExcluded(ctx, index)
	} else {
		err = c.provider.RemoveExcluded(ctx, index)
	}
	if err == nil {
		return excluded, nil
	}

	c.mu.Lock()
	c.setExcludedLocked(index, !excluded)
	c.notifyLocked()
	c.mu.Unlock()

	return !excluded, fmt.Errorf("update learned mark for %d: %w", index, err)
}

// Close stops playback and waits for the sequence goroutine to exit.
func (c *Controller) Close() {
	c.Stop()
	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

func (c *Controller) setExcludedLocked(index int, excluded bool) {
	if excluded {
		c.excluded[index] = true
	} else {
		delete(c.excluded, index)
	}
}

func (c *Controller) inBoundsLocked(i int) bool {
	return i >= 0 && i < len(c.records)
}

// scanLocked walks circularly from start in direction and returns the first
// position whose record is not learned. If every record is learned it
// returns start.
func (c *Controller) scanLocked(start, direction int) int {
	n := len(c.records)
	if n == 0 {
		return start
	}
	for step := 1; step <= n; step++ {
		i := ((start+direction*step)%n + n) % n
		if !c.excluded[c.records[i].Index] {
			return i
		}
	}
	return start
}

// nextUnlearnedLocked returns the first position after the current one
// whose record is not learned, without wrapping.
func (c *Controller) nextUnlearnedLocked() (int, bool) {
	for i := c.state.CurrentIndex + 1; i < len(c.records); i++ {
		if !c.excluded[c.records[i].Index] {
			return i, true
		}
	}
	return 0, false
}

func (c *Controller) playLocked() {
	if c.state.Phase != PhaseIdle || !c.inBoundsLocked(c.state.CurrentIndex) {
		return
	}

	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.state.IsPlaying = true
	c.state.Phase = PhaseSequencing
	if c.state.IsAutoPlay {
		c.state.Phase = PhaseAutoplaying
	}
	record := c.records[c.state.CurrentIndex]
	c.notifyLocked()

	c.wg.Add(1)
	go c.run(ctx, gen, record)
}

func (c *Controller) stopLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.releaseHandleLocked()

	c.state.IsPlaying = false
	c.state.IsAutoPlay = false
	c.state.CurrentAudioType = entities.CueNone
	c.state.Phase = PhaseIdle
}

func (c *Controller) releaseHandleLocked() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
}

func (c *Controller) notifyLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- c.state:
		default:
		}
	}
}

// active reports whether the sequence with generation gen still owns the controller.
func (c *Controller) active(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

func (c *Controller) run(ctx context.Context, gen uint64, record entities.VocabularyRecord) {
	defer c.wg.Done()

	for _, step := range c.steps {
		exists, err := c.provider.AudioExists(ctx, record.Index, step.Cue)
		if !c.active(gen) {
			return
		}
		if err != nil {
			log.Printf("[PLAYER] Existence check for %d/%s failed: %v", record.Index, step.Cue, err)
			continue
		}
		if !exists {
			continue
		}

		if !c.playCue(ctx, gen, record, step) {
			return
		}

		select {
		case <-c.clock.After(step.Pause):
		case <-ctx.Done():
			return
		}
		if !c.active(gen) {
			return
		}
	}

	c.finish(gen)
}

// playCue fetches and plays one cue and waits for it to end. Failures are
// logged and swallowed; it returns false only when the sequence was cancelled.
func (c *Controller) playCue(ctx context.Context, gen uint64, record entities.VocabularyRecord, step Step) bool {
	clip, err := c.provider.FetchAudio(ctx, record.Index, step.Cue)
	if !c.active(gen) {
		return false
	}
	if err != nil {
		log.Printf("[PLAYER] Fetching %d/%s failed: %v", record.Index, step.Cue, err)
		return true
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}
	c.releaseHandleLocked()
	c.mu.Unlock()

	// The output may decode or spawn a process; Stop must not wait for it.
	handle, err := c.output.Play(ctx, clip, step.Rate)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		if err == nil {
			handle.Stop()
		}
		return false
	}
	if err != nil {
		c.state.CurrentAudioType = entities.CueNone
		c.notifyLocked()
		c.mu.Unlock()
		log.Printf("[PLAYER] Playing %d/%s failed: %v", record.Index, step.Cue, err)
		return true
	}
	c.handle = handle
	c.state.CurrentAudioType = step.Cue
	c.notifyLocked()
	c.mu.Unlock()

	select {
	case <-handle.Done():
	case <-ctx.Done():
		return false
	}

	if !c.active(gen) {
		return false
	}
	if err := handle.Err(); err != nil {
		log.Printf("[PLAYER] Playback of %d/%s failed: %v", record.Index, step.Cue, err)
	}
	return true
}

// finish ends a completed sequence and chains the next record when autoplay is armed.
func (c *Controller) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.releaseHandleLocked()

	c.state.IsPlaying = false
	c.state.CurrentAudioType = entities.CueNone
	c.state.Phase = PhaseIdle

	if c.state.IsAutoPlay {
		if next, ok := c.nextUnlearnedLocked(); ok {
			c.state.CurrentIndex = next
			c.notifyLocked()
			c.playLocked()
			return
		}
		c.state.IsAutoPlay = false
	}
	c.notifyLocked()
}
