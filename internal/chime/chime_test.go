package chime

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain reads s to the end and returns the left channel.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			out = append(out, sample[0])
		}
		if !ok {
			return out
		}
	}
}

func TestToneLength(t *testing.T) {
	tone := Tone{Freq: 440, Length: 100 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 10 * time.Millisecond}
	samples := drain(tone.Streamer(SampleRate))
	assert.Len(t, samples, SampleRate.N(100*time.Millisecond))
}

func TestToneEnvelope(t *testing.T) {
	tone := Tone{Freq: 440, Length: 50 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 20 * time.Millisecond}
	samples := drain(tone.Streamer(SampleRate))
	require.NotEmpty(t, samples)

	assert.Equal(t, 0.0, samples[0])
	assert.InDelta(t, 0, samples[len(samples)-1], 0.01)

	peak := 0.0
	for _, v := range samples {
		assert.LessOrEqual(t, math.Abs(v), 1.0)
		peak = math.Max(peak, math.Abs(v))
	}
	assert.Greater(t, peak, 0.9)
}

func TestMelodyPlaysInSequence(t *testing.T) {
	samples := drain(Melody(SampleRate, 0, solveTones))
	want := 0
	for _, tone := range solveTones {
		want += SampleRate.N(tone.Length)
	}
	assert.Len(t, samples, want)
}

func TestMelodyVolume(t *testing.T) {
	loud := drain(Melody(SampleRate, 0, lockTones))
	quiet := drain(Melody(SampleRate, -1, lockTones))
	require.Len(t, quiet, len(loud))
	for i := range loud {
		assert.InDelta(t, loud[i]/2, quiet[i], 1e-9)
	}
}

func TestNop(t *testing.T) {
	var p Player = Nop{}
	p.Lock()
	p.Solve()
}
