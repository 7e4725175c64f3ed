// Package bus describes the audio and event ports of the engine and
// validates host arrangement requests against them.
package bus

// MediaType represents the type of bus.
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type.
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type.
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction.
type Direction int32

const (
	// DirectionInput represents input bus.
	DirectionInput Direction = 0
	// DirectionOutput represents output bus.
	DirectionOutput Direction = 1
)

// Type represents the bus type.
type Type int32

const (
	// TypeMain represents main bus.
	TypeMain Type = 0
	// TypeAux represents auxiliary bus.
	TypeAux Type = 1
)

// Info contains bus configuration.
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio and event buses.
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewEffectsConfiguration returns the port layout of the effects engine:
// two mono inputs, two mono outputs and one 16-channel event input.
func NewEffectsConfiguration() *Configuration {
	return NewBuilder().
		WithMonoInput("In L").
		WithMonoInput("In R").
		WithMonoOutput("Out L").
		WithMonoOutput("Out R").
		WithEventInput("Event In", 16).
		MustBuild()
}

// GetBusCount returns the number of buses for a given type and direction.
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus.
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)

	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}
	return nil
}

// ChannelCount sums the channels of all audio buses in one direction.
func (c *Configuration) ChannelCount(direction Direction) int32 {
	total := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			total += bus.ChannelCount
		}
	}
	return total
}

// SetBusActive activates or deactivates a bus. It reports whether the bus exists.
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) bool {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return false
	}
	info.IsActive = active
	return true
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}
