package param

// Builder provides a fluent API for creating parameters.
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder with a 0-1 range.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// ShortName sets the short name.
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the plain min and max values.
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value in the plain range.
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = b.param.Normalize(value)
	return b
}

// DefaultNormalized sets the default value directly in 0-1.
func (b *Builder) DefaultNormalized(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string.
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Toggle creates an on/off parameter.
func (b *Builder) Toggle() *Builder {
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	b.param.formatFunc = OnOffFormatter
	b.param.parseFunc = OnOffParser
	return b
}

// List marks the parameter as a stepped list.
func (b *Builder) List(count int32) *Builder {
	b.param.StepCount = count
	b.param.Flags |= IsList
	return b
}

// ReadOnly marks the parameter as read-only.
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden.
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Formatter sets custom value formatting and parsing.
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter initialized to its default.
func (b *Builder) Build() *Parameter {
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
