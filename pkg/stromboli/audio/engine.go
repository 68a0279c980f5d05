package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// defaultSampleRate for synthesis and playback.
const defaultSampleRate = beep.SampleRate(44100)

// EngineOptions configures an Engine.
type EngineOptions struct {
	// Volume is the master cue volume, 0 to 1. Zero means the default.
	Volume float64

	// CrossfadeDuration is the ambience transition length. Zero means
	// the default of 1.5s.
	CrossfadeDuration time.Duration
}

// Engine owns the speaker, the cue generators, and the ambience
// crossfader. One Engine per process; cue playback and domain changes
// are safe from multiple goroutines.
type Engine struct {
	rate   beep.SampleRate
	volume float64
	muted  *atomic.Bool

	fader        *Fader
	currentTrack *atomic.Int32
	done         chan struct{}

	log *slog.Logger
}

// NewEngine initializes the speaker and starts the silent ambient beds
// and their crossfader. Fails if the audio device cannot be opened.
func NewEngine(opts EngineOptions) (*Engine, error) {
	volume := opts.Volume
	if volume == 0 {
		volume = 0.8
	}
	fade := opts.CrossfadeDuration
	if fade == 0 {
		fade = 1500 * time.Millisecond
	}

	rate := defaultSampleRate
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	beds := defaultBeds(rate)
	fader := NewFader(beds, fade)

	e := &Engine{
		rate:         rate,
		volume:       volume,
		muted:        atomic.NewBool(false),
		fader:        fader,
		currentTrack: atomic.NewInt32(int32(TrackNone)),
		done:         make(chan struct{}),
		log:          internal.GetLogger(),
	}

	for _, bed := range beds {
		speaker.Play(bed)
	}
	go fader.Run(e.done)

	// The shell starts on the OS bar.
	e.OnDomainChange("osbar-nav")

	return e, nil
}

// PlayCue plays a one-shot interface sound. Muted engines drop cues.
func (e *Engine) PlayCue(cue Cue) {
	if e.muted.Load() {
		return
	}
	s := streamerForCue(cue, e.rate, e.volume)
	if s == nil {
		return
	}
	speaker.Play(s)
}

// OnDomainChange retargets the ambient crossfade for the new active
// domain. Retargeting only happens when the mapped track actually
// changes, so navigation within a context never restarts a fade.
func (e *Engine) OnDomainChange(domainID string) {
	track := TrackForDomain(domainID)
	if Track(e.currentTrack.Swap(int32(track))) == track {
		return
	}
	e.log.Debug("ambience retarget", "domain", domainID, "track", track)
	if e.muted.Load() {
		return
	}
	e.fader.SetTarget(track)
}

// SetMuted toggles all output. Muting silences the ambience and drops
// cues; unmuting fades the current context's bed back in.
func (e *Engine) SetMuted(muted bool) {
	e.muted.Store(muted)
	if muted {
		e.fader.SetTarget(TrackNone)
	} else {
		e.fader.SetTarget(Track(e.currentTrack.Load()))
	}
}

// Close stops the crossfader and the speaker.
func (e *Engine) Close() {
	close(e.done)
	speaker.Close()
}
