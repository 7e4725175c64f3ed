package param

// Table holds the latest normalized value of every dense parameter index.
// It is owned by the audio thread and never resized after creation.
type Table struct {
	values []float64
}

// NewTable allocates a table with size entries.
func NewTable(size int) *Table {
	return &Table{values: make([]float64, size)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.values)
}

// Get returns the value at id, or 0 when id is out of range.
func (t *Table) Get(id uint32) float64 {
	if int(id) >= len(t.values) {
		return 0
	}
	return t.values[id]
}

// Set stores value at id. Out of range IDs are ignored.
func (t *Table) Set(id uint32, value float64) bool {
	if int(id) >= len(t.values) {
		return false
	}
	t.values[id] = value
	return true
}

// LoadDefaults copies the default of every registered parameter that
// falls inside the table.
func (t *Table) LoadDefaults(r *Registry) {
	for _, p := range r.All() {
		t.Set(p.ID, p.DefaultValue)
	}
}
