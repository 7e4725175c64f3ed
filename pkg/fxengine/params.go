package fxengine

import (
	"fmt"
	"strings"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/reverb"
	"github.com/justyntemme/fxroute/pkg/framework/param"
)

// Parameter IDs. The order is part of the host contract.
const (
	ParamEffectsMode uint32 = iota
	ParamChorusMode
	ParamEndChorus
	ParamDelayTime
	ParamDelayTimeSync
	ParamDelayFeedback
	ParamDelayTone
	ParamEndDelay
	ParamReverbPreset
	ParamReverbDecay
	ParamReverbPreDelay
	ParamReverbEarlyMix
	ParamReverbTone
	ParamReverbShimmer
	ParamTempoSync
	ParamVolume
	ParamChorusLevel
	ParamDelayLevel
	ParamReverbLevel
	ParamChorusSlot
	ParamDelaySlot
	ParamReverbSlot
	ParamPrint

	// NumParams is the size of the parameter table.
	NumParams
)

// Controller mirror IDs. They sit past the table and have no audio effect.
const (
	ParamPitchBend = NumParams + 1 + iota
	ParamModWheel
)

// paramIDMask strips the host's upper ID bits while keeping the sign bit.
const paramIDMask = 0x87FFFFFF

// MaskParamID normalizes a host parameter ID before it is looked up.
func MaskParamID(id uint32) uint32 {
	return id & paramIDMask
}

// ChorusMode selects which chorus paths run.
type ChorusMode int

const (
	ChorusModeI ChorusMode = iota
	ChorusModeII
	ChorusModeBoth
)

// DecodeChorusMode maps a normalized control onto a mode. The thresholds
// 1/3 and 2/3 belong to the upper mode.
func DecodeChorusMode(v float64) ChorusMode {
	switch {
	case v < 1.0/3:
		return ChorusModeI
	case v < 2.0/3:
		return ChorusModeII
	default:
		return ChorusModeBoth
	}
}

// Enables returns the path flags for the mode.
func (m ChorusMode) Enables() (pathI, pathII bool) {
	switch m {
	case ChorusModeII:
		return false, true
	case ChorusModeBoth:
		return true, true
	default:
		return true, false
	}
}

// String returns the panel label of the mode.
func (m ChorusMode) String() string {
	switch m {
	case ChorusModeI:
		return "I"
	case ChorusModeII:
		return "II"
	case ChorusModeBoth:
		return "I+II"
	default:
		return "Unknown"
	}
}

// Factory chain order: modulation, then delay, then reverb.
const (
	DefaultChorusSlot = 0
	DefaultDelaySlot  = 1
	DefaultReverbSlot = 2
)

func presetNames() []string {
	presets := reverb.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

func slotNames() []string {
	names := make([]string, dsp.FXSlots+1)
	for i := range names {
		names[i] = fmt.Sprintf("Slot %d", i+1)
	}
	return names
}

func percent(id uint32, name, short string, def float64) *param.Parameter {
	return param.New(id, name).
		ShortName(short).
		Range(0, 100).
		Default(def).
		Unit("%").
		Formatter(param.PercentFormatter, param.PercentParser).
		Build()
}

func list(id uint32, name, short string, def int, items []string) *param.Parameter {
	return param.New(id, name).
		ShortName(short).
		Range(0, float64(len(items)-1)).
		List(int32(len(items) - 1)).
		Default(float64(def)).
		Formatter(param.ListFormatter(items...), param.ListParser(items...)).
		Build()
}

func milliseconds(id uint32, name, short string, maxMs float64) *param.Parameter {
	return param.New(id, name).
		ShortName(short).
		Range(0, maxMs).
		Unit("ms").
		Formatter(param.TimeFormatter, param.TimeParser).
		Build()
}

func toggle(id uint32, name, short string) *param.Parameter {
	return param.New(id, name).ShortName(short).Toggle().Build()
}

func hidden(id uint32, name string) *param.Parameter {
	return param.New(id, name).ReadOnly().Hidden().Build()
}

// RegisterParameters adds the full parameter surface to r.
func RegisterParameters(r *param.Registry) error {
	slots := slotNames()
	err := r.Add(
		list(ParamEffectsMode, "Effects Mode", "Mode", 0, []string{"Normal", "Alternate"}),
		list(ParamChorusMode, "Chorus Mode", "Ch Mode", 0, []string{
			ChorusModeI.String(), ChorusModeII.String(), ChorusModeBoth.String(),
		}),
		hidden(ParamEndChorus, "End Chorus"),
		percent(ParamDelayTime, "Delay Time", "Time", 50),
		percent(ParamDelayTimeSync, "Delay Time Sync", "Sync Time", 50),
		percent(ParamDelayFeedback, "Delay Feedback", "Feedback", 50),
		percent(ParamDelayTone, "Delay Tone", "Dl Tone", 50),
		hidden(ParamEndDelay, "End Delay"),
		list(ParamReverbPreset, "Reverb Preset", "Preset", 0, presetNames()),
		percent(ParamReverbDecay, "Reverb Decay", "Decay", 50),
		milliseconds(ParamReverbPreDelay, "Reverb Pre-Delay", "Pre-Dly", reverb.MaxPreDelayMs),
		percent(ParamReverbEarlyMix, "Reverb Early Mix", "Early", 50),
		percent(ParamReverbTone, "Reverb Tone", "Rv Tone", 50),
		percent(ParamReverbShimmer, "Reverb Shimmer", "Shimmer", 0),
		toggle(ParamTempoSync, "Tempo Sync", "Sync"),
		percent(ParamVolume, "Volume", "Vol", 100),
		percent(ParamChorusLevel, "Chorus Level", "Ch Lvl", 0),
		percent(ParamDelayLevel, "Delay Level", "Dl Lvl", 0),
		percent(ParamReverbLevel, "Reverb Level", "Rv Lvl", 0),
		list(ParamChorusSlot, "Chorus Slot", "Ch Slot", DefaultChorusSlot, slots),
		list(ParamDelaySlot, "Delay Slot", "Dl Slot", DefaultDelaySlot, slots),
		list(ParamReverbSlot, "Reverb Slot", "Rv Slot", DefaultReverbSlot, slots),
		toggle(ParamPrint, "Print", "Print"),
		param.New(ParamPitchBend, "Pitch Bend").ShortName("Bend").DefaultNormalized(0.5).Hidden().Build(),
		param.New(ParamModWheel, "Mod Wheel").ShortName("Mod").Hidden().Build(),
	)
	if err != nil {
		return fmt.Errorf("register parameters: %w", err)
	}
	return nil
}

// NewRegistry returns a registry holding the full parameter surface.
func NewRegistry() (*param.Registry, error) {
	r := param.NewRegistry()
	if err := RegisterParameters(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ParamName returns the short name used in logs, or the numeric ID.
func ParamName(r *param.Registry, id uint32) string {
	if p := r.Get(id); p != nil {
		return strings.ToLower(p.ShortName)
	}
	return fmt.Sprintf("#%d", id)
}
