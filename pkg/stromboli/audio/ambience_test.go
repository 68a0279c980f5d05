package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestTrackForDomain verifies domain id to track mapping
func TestTrackForDomain(t *testing.T) {
	tests := []struct {
		domainID string
		want     Track
	}{
		{"osbar-nav", TrackHome},
		{"osbar", TrackHome},
		{"window-header-abc123", TrackWindowHeader},
		{"terminal-body-abc123", TrackTerminal},
		{"some-other-domain", TrackTerminal},
		{"", TrackTerminal},
	}
	for _, tt := range tests {
		if got := TrackForDomain(tt.domainID); got != tt.want {
			t.Errorf("TrackForDomain(%q) = %s, want %s", tt.domainID, got, tt.want)
		}
	}
}

func testBeds(rate beep.SampleRate) map[Track]*gain {
	return map[Track]*gain{
		TrackHome:     {streamer: NewDrone(110.0, WaveSine, rate)},
		TrackTerminal: {streamer: NewDrone(55.0, WaveSine, rate)},
	}
}

// TestFaderRampsTowardTarget verifies the delta-time crossfade
func TestFaderRampsTowardTarget(t *testing.T) {
	beds := testBeds(44100)
	f := NewFader(beds, 1500*time.Millisecond)

	f.SetTarget(TrackHome)
	if f.Target() != TrackHome {
		t.Fatalf("Target() = %s, want home", f.Target())
	}

	// 750ms of ramp in 10ms steps: half way up.
	for i := 0; i < 75; i++ {
		f.Step(0.010)
	}
	home := beds[TrackHome].getVolume()
	if home < 0.45 || home > 0.55 {
		t.Errorf("home volume after half fade = %f, want ~0.5", home)
	}
	if vol := beds[TrackTerminal].getVolume(); vol != 0 {
		t.Errorf("terminal volume = %f, want 0", vol)
	}

	// The rest of the ramp clamps at exactly 1.
	for i := 0; i < 100; i++ {
		f.Step(0.010)
	}
	if vol := beds[TrackHome].getVolume(); vol != 1.0 {
		t.Errorf("home volume after full fade = %f, want 1.0", vol)
	}
}

// TestFaderCrossfade verifies the old bed ramps down while the new ramps up
func TestFaderCrossfade(t *testing.T) {
	beds := testBeds(44100)
	f := NewFader(beds, 1*time.Second)

	f.SetTarget(TrackHome)
	for i := 0; i < 200; i++ {
		f.Step(0.010)
	}

	f.SetTarget(TrackTerminal)
	for i := 0; i < 30; i++ {
		f.Step(0.010)
	}

	home := beds[TrackHome].getVolume()
	term := beds[TrackTerminal].getVolume()
	if home >= 1.0 || home <= 0 {
		t.Errorf("home volume mid-crossfade = %f, want strictly between 0 and 1", home)
	}
	if term <= 0 || term >= 1.0 {
		t.Errorf("terminal volume mid-crossfade = %f, want strictly between 0 and 1", term)
	}

	for i := 0; i < 200; i++ {
		f.Step(0.010)
	}
	if vol := beds[TrackHome].getVolume(); vol != 0 {
		t.Errorf("home volume after crossfade = %f, want 0", vol)
	}
	if vol := beds[TrackTerminal].getVolume(); vol != 1.0 {
		t.Errorf("terminal volume after crossfade = %f, want 1.0", vol)
	}
}

// TestGainScalesSamples verifies the gain streamer applies its volume
func TestGainScalesSamples(t *testing.T) {
	g := &gain{streamer: NewDrone(0, WaveSquare, 44100)}

	g.setVolume(0.5)
	samples := make([][2]float64, 10)
	n, ok := g.Stream(samples)
	if !ok || n != 10 {
		t.Fatalf("Stream = (%d, %v), want (10, true)", n, ok)
	}
	for i := 0; i < n; i++ {
		if got := abs(samples[i][0]); got != 0.5 {
			t.Fatalf("sample %d amplitude = %f, want 0.5", i, got)
		}
	}

	g.setVolume(0)
	n, _ = g.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("sample %d = %f, want 0 at zero gain", i, samples[i][0])
		}
	}
}
