package envelope

import (
	"math"
	"testing"
)

const testRate = 96000.0

func TestHoldDetectorCreation(t *testing.T) {
	d := NewHoldDetector(testRate, 0.0085, 0.25)

	if d.HoldSamples() != 816 {
		t.Errorf("HoldSamples = %d, want 816", d.HoldSamples())
	}
	want := math.Exp(-3.0 / (testRate * 0.25))
	if math.Abs(d.ReleaseCoef()-want) > 1e-15 {
		t.Errorf("ReleaseCoef = %g, want %g", d.ReleaseCoef(), want)
	}
	if d.windows[1].timer != d.holdSamples {
		t.Errorf("second window not staggered: timer = %d", d.windows[1].timer)
	}
}

func TestHoldDetectorHoldsFullPeriod(t *testing.T) {
	d := NewHoldDetector(testRate, 0.0085, 0.25)
	h := d.HoldSamples()

	// Wherever the impulse lands it is held for at least one hold period and
	// released within two.
	for offset := 0; offset < 5*h; offset += 17 {
		d.Reset()
		for i := 0; i < offset; i++ {
			d.Hold(0)
		}
		d.Hold(1.0)

		held := 0
		for d.Hold(0) == 1.0 {
			held++
			if held > 4*h {
				t.Fatalf("offset %d: peak held forever", offset)
			}
		}
		if held < h {
			t.Errorf("offset %d: peak held for %d samples, want at least %d", offset, held, h)
		}
		if held > 2*h {
			t.Errorf("offset %d: peak held for %d samples, longer than two periods", offset, held)
		}
	}
}

func TestHoldDetectorRelease(t *testing.T) {
	d := NewHoldDetector(testRate, 0.0085, 0.25)
	h := d.HoldSamples()

	if env := d.Detect(1.0); env != 1.0 {
		t.Fatalf("attack should be instant, got %f", env)
	}

	// Within the hold period the envelope must not move.
	for i := 0; i < h; i++ {
		if env := d.Detect(0); env != 1.0 {
			t.Fatalf("sample %d: envelope released during hold: %f", i, env)
		}
	}

	// Once both windows have emptied the envelope decays by the release factor.
	for i := 0; i < 2*h+1; i++ {
		d.Detect(0)
	}
	before := d.Envelope()
	after := d.Detect(0)
	if before <= 0 || before >= 1 {
		t.Fatalf("envelope should be releasing, got %f", before)
	}
	if math.Abs(after-before*d.ReleaseCoef()) > 1e-12 {
		t.Errorf("release step: got %g, want %g", after, before*d.ReleaseCoef())
	}
}

func TestHoldDetectorReset(t *testing.T) {
	d := NewHoldDetector(testRate, 0.0085, 0.25)
	d.Detect(0.7)
	d.Reset()
	if d.Envelope() != 0 {
		t.Errorf("envelope after reset = %f", d.Envelope())
	}
	if got := d.Hold(0); got != 0 {
		t.Errorf("hold after reset = %f", got)
	}
}
