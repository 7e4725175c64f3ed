package bus

import (
	"errors"
	"fmt"
)

// SpeakerArrangement is a bit set of speaker positions, one bit per speaker.
type SpeakerArrangement uint64

// Speaker arrangements the engine understands.
const (
	SpeakerEmpty  SpeakerArrangement = 0
	SpeakerLeft   SpeakerArrangement = 1 << 0
	SpeakerRight  SpeakerArrangement = 1 << 1
	SpeakerMono   SpeakerArrangement = 1 << 19
	SpeakerStereo                    = SpeakerLeft | SpeakerRight
)

// Symbolic sample sizes.
const (
	Sample32 int32 = 0
	Sample64 int32 = 1
)

var (
	// ErrUnsupportedArrangement is returned for any bus layout other than
	// two inputs and two outputs with a mono first output.
	ErrUnsupportedArrangement = errors.New("unsupported bus arrangement")
	// ErrUnsupportedSampleSize is returned for anything but 32-bit samples.
	ErrUnsupportedSampleSize = errors.New("unsupported sample size")
)

// ValidateArrangement checks a host arrangement request.
func ValidateArrangement(inputs, outputs []SpeakerArrangement) error {
	if len(inputs) != 2 || len(outputs) != 2 {
		return fmt.Errorf("%w: %d inputs, %d outputs", ErrUnsupportedArrangement, len(inputs), len(outputs))
	}
	if outputs[0] != SpeakerMono {
		return fmt.Errorf("%w: first output is %#x, want mono", ErrUnsupportedArrangement, uint64(outputs[0]))
	}
	return nil
}

// ValidateSampleSize accepts 32-bit float processing only.
func ValidateSampleSize(symbolicSampleSize int32) error {
	if symbolicSampleSize != Sample32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedSampleSize, symbolicSampleSize)
	}
	return nil
}
