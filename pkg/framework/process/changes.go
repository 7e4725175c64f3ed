package process

// ParamValueQueue holds the change points of one parameter within a block.
type ParamValueQueue interface {
	ParameterID() uint32
	PointCount() int32
	// Point returns the sample offset and normalized value of point i.
	Point(index int32) (offset int32, value float64, ok bool)
}

// ParameterChanges is the per-block list of parameter queues delivered by
// the host.
type ParameterChanges interface {
	ParameterCount() int32
	ParameterData(index int32) ParamValueQueue
}

type point struct {
	offset int32
	value  float64
}

// ValueQueue is a fixed-capacity ParamValueQueue.
type ValueQueue struct {
	id     uint32
	points []point
}

// ParameterID returns the queued parameter ID.
func (q *ValueQueue) ParameterID() uint32 {
	return q.id
}

// PointCount returns the number of queued points.
func (q *ValueQueue) PointCount() int32 {
	return int32(len(q.points))
}

// Point returns the point at index.
func (q *ValueQueue) Point(index int32) (int32, float64, bool) {
	if index < 0 || int(index) >= len(q.points) {
		return 0, 0, false
	}
	p := q.points[index]
	return p.offset, p.value, true
}

// ChangeList is a preallocated ParameterChanges. Points for the same ID
// share one queue, mirroring how hosts deliver automation.
type ChangeList struct {
	queues []ValueQueue
	used   int
}

// NewChangeList preallocates room for maxParams queues of maxPoints each.
func NewChangeList(maxParams, maxPoints int) *ChangeList {
	l := &ChangeList{queues: make([]ValueQueue, maxParams)}
	for i := range l.queues {
		l.queues[i].points = make([]point, 0, maxPoints)
	}
	return l
}

// Add queues a point. It returns false when the list or the queue is full.
func (l *ChangeList) Add(id uint32, offset int32, value float64) bool {
	q := l.queue(id)
	if q == nil || len(q.points) == cap(q.points) {
		return false
	}
	q.points = append(q.points, point{offset: offset, value: value})
	return true
}

func (l *ChangeList) queue(id uint32) *ValueQueue {
	for i := 0; i < l.used; i++ {
		if l.queues[i].id == id {
			return &l.queues[i]
		}
	}
	if l.used == len(l.queues) {
		return nil
	}
	q := &l.queues[l.used]
	q.id = id
	q.points = q.points[:0]
	l.used++
	return q
}

// Reset empties the list while keeping its storage.
func (l *ChangeList) Reset() {
	l.used = 0
}

// ParameterCount returns the number of queues in use.
func (l *ChangeList) ParameterCount() int32 {
	return int32(l.used)
}

// ParameterData returns queue index, or nil when out of range.
func (l *ChangeList) ParameterData(index int32) ParamValueQueue {
	if index < 0 || int(index) >= l.used {
		return nil
	}
	return &l.queues[index]
}
