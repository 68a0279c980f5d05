package audio

import (
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Track identifies an ambient bed.
type Track int

const (
	TrackNone Track = iota
	TrackHome
	TrackWindowHeader
	TrackTerminal
)

// String returns a string representation of the track.
func (t Track) String() string {
	switch t {
	case TrackHome:
		return "home"
	case TrackWindowHeader:
		return "window_header"
	case TrackTerminal:
		return "terminal"
	default:
		return "none"
	}
}

// TrackForDomain maps a domain id to its ambient track by substring:
// the OS bar plays the home bed, window headers their own, and
// everything else falls through to the terminal bed.
func TrackForDomain(domainID string) Track {
	switch {
	case strings.Contains(domainID, "osbar"):
		return TrackHome
	case strings.Contains(domainID, "header"):
		return TrackWindowHeader
	case strings.Contains(domainID, "terminal"):
		return TrackTerminal
	default:
		return TrackTerminal
	}
}

// gain scales a streamer by a runtime-adjustable factor. The factor is
// written by the fader and read by the speaker goroutine.
type gain struct {
	mu       sync.Mutex
	streamer beep.Streamer
	volume   float64
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)

	g.mu.Lock()
	vol := g.volume
	g.mu.Unlock()

	for i := 0; i < n; i++ {
		samples[i][0] *= vol
		samples[i][1] *= vol
	}
	return n, ok
}

func (g *gain) Err() error { return g.streamer.Err() }

func (g *gain) setVolume(vol float64) {
	g.mu.Lock()
	g.volume = vol
	g.mu.Unlock()
}

func (g *gain) getVolume() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

// faderTick is how often the crossfader adjusts volumes.
const faderTick = 10 * time.Millisecond

// Fader runs all ambient beds simultaneously at individually faded
// volumes: the target track ramps to full while every other bed ramps to
// silence, over a fixed fade duration. All beds keep streaming so a
// return to a recent track resumes mid-texture instead of restarting.
type Fader struct {
	mu           sync.Mutex
	beds         map[Track]*gain
	target       Track
	fadeDuration float64 // seconds
}

// NewFader creates a fader over the given beds, all starting silent.
func NewFader(beds map[Track]*gain, fadeDuration time.Duration) *Fader {
	for _, bed := range beds {
		bed.setVolume(0)
	}
	return &Fader{
		beds:         beds,
		target:       TrackNone,
		fadeDuration: fadeDuration.Seconds(),
	}
}

// SetTarget retargets the crossfade. Volumes move on subsequent Step
// calls; the switch itself is instant and cheap.
func (f *Fader) SetTarget(track Track) {
	f.mu.Lock()
	f.target = track
	f.mu.Unlock()
}

// Target returns the current crossfade target.
func (f *Fader) Target() Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Step advances every bed's volume toward its target by dt worth of
// ramp, full scale over the fade duration. Exposed so the ramp can be
// driven without a running clock.
func (f *Fader) Step(dt float64) {
	f.mu.Lock()
	target := f.target
	f.mu.Unlock()

	change := dt
	if f.fadeDuration > 0 {
		change = dt / f.fadeDuration
	}

	for track, bed := range f.beds {
		current := bed.getVolume()
		goal := 0.0
		if track == target {
			goal = 1.0
		}

		switch {
		case current < goal:
			next := current + change
			if next > goal {
				next = goal
			}
			bed.setVolume(next)
		case current > goal:
			next := current - change
			if next < goal {
				next = goal
			}
			bed.setVolume(next)
		}
	}
}

// Run drives Step with wall-clock delta time until done is closed.
func (f *Fader) Run(done <-chan struct{}) {
	ticker := time.NewTicker(faderTick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			f.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// defaultBeds synthesizes the three ambient drones. Low sine beds with a
// quiet octave shimmer; no audio assets are shipped.
func defaultBeds(rate beep.SampleRate) map[Track]*gain {
	bed := func(freq float64) *gain {
		mixed := beep.Mix(
			newVolume(NewDrone(freq, WaveSine, rate), 0.25),
			newVolume(NewDrone(freq*2, WaveSine, rate), 0.06),
		)
		return &gain{streamer: mixed}
	}
	return map[Track]*gain{
		TrackHome:         bed(110.0),
		TrackWindowHeader: bed(146.83),
		TrackTerminal:     bed(55.0),
	}
}
