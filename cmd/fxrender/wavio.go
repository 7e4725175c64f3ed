package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errNotWAV = errors.New("not a valid WAV file")

// stereo holds a whole signal as two float32 channels.
type stereo struct {
	l, r []float32
}

func newStereo(frames int) *stereo {
	return &stereo{l: make([]float32, frames), r: make([]float32, frames)}
}

func (s *stereo) frames() int {
	return len(s.l)
}

// readWAV loads a mono or stereo PCM file. Mono is copied to both channels.
func readWAV(path string) (*stereo, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, errNotWAV)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	channels := int(d.NumChans)
	if channels < 1 || channels > 2 {
		return nil, 0, fmt.Errorf("%s: %d channels, want mono or stereo", path, channels)
	}
	if d.BitDepth == 0 {
		return nil, 0, fmt.Errorf("%s: missing bit depth", path)
	}
	scale := float32(int64(1) << (d.BitDepth - 1))

	s := newStereo(len(buf.Data) / channels)
	for i := range s.l {
		s.l[i] = float32(buf.Data[i*channels]) / scale
		s.r[i] = float32(buf.Data[i*channels+channels-1]) / scale
	}
	return s, int(d.SampleRate), nil
}

// writeWAV stores s as interleaved stereo PCM. Samples must already be
// within [-1, 1].
func writeWAV(path string, s *stereo, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	scale := float32(int64(1)<<(bitDepth-1) - 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, 2*s.frames()),
		SourceBitDepth: bitDepth,
	}
	for i := range s.l {
		buf.Data[2*i] = int(s.l[i] * scale)
		buf.Data[2*i+1] = int(s.r[i] * scale)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 2, 1)
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
