// Package audio plays synthesized interface sounds: short cues for
// cursor movement and activation, and a per-context ambient drone that
// crossfades when the active domain changes.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int // negative means endless
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

// NewDrone creates an oscillator that never ends, for ambient beds.
func NewDrone(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: -1,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration >= 0 && o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume creates a volume effect safely.
// math.Log2(0) is -Inf, so zero volume is handled by silencing.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue identifies an interface sound effect.
type Cue int

const (
	// CueNav plays on every cursor movement.
	CueNav Cue = iota
	// CueDomainSwitch plays when focus crosses into another domain.
	CueDomainSwitch
	// CueClick plays on element activation.
	CueClick
	// CueResize plays when a window changes size.
	CueResize
)

// String returns a string representation of the cue.
func (c Cue) String() string {
	switch c {
	case CueNav:
		return "nav"
	case CueDomainSwitch:
		return "domain_switch"
	case CueClick:
		return "click"
	case CueResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Cue sound generators

// createNavSound generates a short soft tick for cursor movement
func createNavSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(660.0, 40*time.Millisecond, WaveSine, rate)
	shaped := NewEnvelope(osc, 40*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, rate)
	return newVolume(shaped, vol*0.5)
}

// createClickSound generates a firm blip for activation
func createClickSound(rate beep.SampleRate, vol float64) beep.Streamer {
	fund := NewOscillator(880.0, 80*time.Millisecond, WaveSine, rate)
	fundShaped := NewEnvelope(fund, 80*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, rate)

	over := NewOscillator(1760.0, 80*time.Millisecond, WaveSine, rate)
	overShaped := NewEnvelope(over, 80*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, vol)
}

// createDomainSwitchSound generates a rising two-note chime
func createDomainSwitchSound(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := NewOscillator(523.25, 60*time.Millisecond, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, 60*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, rate)

	n2 := NewOscillator(783.99, 90*time.Millisecond, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, 90*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, rate)

	sequence := beep.Seq(n1Shaped, n2Shaped)
	return newVolume(sequence, vol*0.6)
}

// createResizeSound generates a quick noise whoosh
func createResizeSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewOscillator(0, 120*time.Millisecond, WaveNoise, rate)
	shaped := NewEnvelope(noise, 120*time.Millisecond, 20*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, vol*0.4)
}

// streamerForCue returns the streamer for the given cue at the given
// master volume, or nil for an unknown cue.
func streamerForCue(cue Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	switch cue {
	case CueNav:
		return createNavSound(rate, vol)
	case CueClick:
		return createClickSound(rate, vol)
	case CueDomainSwitch:
		return createDomainSwitchSound(rate, vol)
	case CueResize:
		return createResizeSound(rate, vol)
	default:
		return nil
	}
}
