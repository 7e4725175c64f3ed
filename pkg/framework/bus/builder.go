package bus

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for building bus configurations.
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates a new bus configuration builder.
func NewBuilder() *Builder {
	return &Builder{
		config: &Configuration{},
	}
}

// WithAudioInput adds an audio input bus.
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.add(&b.config.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    DirectionInput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

// WithAudioOutput adds an audio output bus.
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.add(&b.config.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    DirectionOutput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

// WithMonoInput adds a mono input bus.
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput adds a mono output bus.
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

// WithEventInput adds an event input bus with the given channel count.
func (b *Builder) WithEventInput(name string, channels int32) *Builder {
	return b.add(&b.config.eventBuses, Info{
		MediaType:    MediaTypeEvent,
		Direction:    DirectionInput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

func (b *Builder) add(buses *[]Info, info Info) *Builder {
	if info.ChannelCount <= 0 {
		b.errors = append(b.errors, fmt.Errorf("invalid channel count %d for bus %s", info.ChannelCount, info.Name))
	}
	*buses = append(*buses, info)
	return b
}

// Validate checks if the configuration is valid.
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return fmt.Errorf("builder errors: %w", errors.Join(b.errors...))
	}
	if b.config.GetBusCount(MediaTypeAudio, DirectionOutput) == 0 {
		return fmt.Errorf("configuration must have at least one audio output bus")
	}
	return nil
}

// Build returns the built configuration or an error.
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error.
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
