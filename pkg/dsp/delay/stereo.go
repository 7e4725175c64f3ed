package delay

import "github.com/justyntemme/fxroute/pkg/dsp"

// Stereo pair defaults. The two read positions wobble at different rates
// so the channels decorrelate.
const (
	DefaultLevel     = 0.7
	DefaultLFORateL  = 0.4
	DefaultLFORateR  = 0.65
	DefaultLFOAmount = 6.0
)

// Stereo drives two independent echoes with the same settings.
type Stereo struct {
	Left  *Echo
	Right *Echo
}

// NewStereo creates a stereo pair with the default level and wobble.
func NewStereo(sampleRate float64) *Stereo {
	s := &Stereo{
		Left:  NewEcho(sampleRate),
		Right: NewEcho(sampleRate),
	}
	s.Left.SetLevel(DefaultLevel)
	s.Right.SetLevel(DefaultLevel)
	s.Left.SetLFO(DefaultLFORateL, DefaultLFOAmount)
	s.Right.SetLFO(DefaultLFORateR, DefaultLFOAmount)
	return s
}

func (s *Stereo) SetTime(v float64) {
	s.Left.SetTime(v)
	s.Right.SetTime(v)
}

func (s *Stereo) SetTimeSync(v float64) {
	s.Left.SetTimeSync(v)
	s.Right.SetTimeSync(v)
}

func (s *Stereo) SetTempoSync(on bool) {
	s.Left.SetTempoSync(on)
	s.Right.SetTempoSync(on)
}

func (s *Stereo) SetTempo(beatsPerSecond float64) {
	s.Left.SetTempo(beatsPerSecond)
	s.Right.SetTempo(beatsPerSecond)
}

func (s *Stereo) SetFeedback(v float64) {
	s.Left.SetFeedback(v)
	s.Right.SetFeedback(v)
}

func (s *Stereo) SetTone(v float64) {
	s.Left.SetTone(v)
	s.Right.SetTone(v)
}

func (s *Stereo) SetMix(v float64) {
	s.Left.SetMix(v)
	s.Right.SetMix(v)
}

// ProcessBlock runs each channel through its own echo. Input and output may alias.
func (s *Stereo) ProcessBlock(inL, inR, outL, outR *dsp.Block) {
	s.Left.Run(inL, outL)
	s.Right.Run(inR, outR)
}

// Reset clears both echoes.
func (s *Stereo) Reset() {
	s.Left.Reset()
	s.Right.Reset()
}
