// Package chime plays short tones when triples lock and stages are solved.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

type Player interface {
	Lock()
	Solve()
}

// Nop plays nothing.
type Nop struct{}

func (Nop) Lock()  {}
func (Nop) Solve() {}

// Tone is a sine note shaped by a linear attack and release.
type Tone struct {
	Freq    float64
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
}

// Streamer renders the tone at sr. It ends after Length.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	total := sr.N(t.Length)
	attack := max(1, sr.N(t.Attack))
	release := max(1, sr.N(t.Release))
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := 1.0
			if pos < attack {
				env = float64(pos) / float64(attack)
			}
			if left := total - pos; left < release {
				env = math.Min(env, float64(left)/float64(release))
			}
			v := env * math.Sin(2*math.Pi*t.Freq*float64(pos)/float64(sr))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	}))
}

var (
	lockTones = []Tone{
		{Freq: 880, Length: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 60 * time.Millisecond},
	}
	solveTones = []Tone{
		{Freq: 659.25, Length: 110 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond},
		{Freq: 783.99, Length: 110 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond},
		{Freq: 1318.5, Length: 300 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 200 * time.Millisecond},
	}
)

// Melody plays tones one after another, attenuated by volume (in halvings).
func Melody(sr beep.SampleRate, volume float64, tones []Tone) beep.Streamer {
	streamers := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		streamers[i] = t.Streamer(sr)
	}
	return &effects.Volume{
		Streamer: beep.Seq(streamers...),
		Base:     2,
		Volume:   volume,
	}
}

// Speaker plays through the sound card. The speaker is process-global, so
// only one Speaker should be open at a time.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) play(tones []Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(Melody(SampleRate, s.volume, tones))
	speaker.Unlock()
}

func (s *Speaker) Lock()  { s.play(lockTones) }
func (s *Speaker) Solve() { s.play(solveTones) }

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}
