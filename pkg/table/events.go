package table

// ChangeKind classifies a structural change to a CellModel.
type ChangeKind int

const (
	// ChangeResize signals that row or column sizes changed.
	ChangeResize ChangeKind = iota
	// ChangeInsert signals that rows or columns were inserted.
	ChangeInsert
	// ChangeDelete signals that rows or columns were deleted.
	ChangeDelete
	// ChangeMerge signals that cells were merged.
	ChangeMerge
	// ChangeSplit signals that a merged cell was split.
	ChangeSplit
	// ChangeVisibility signals that rows or columns were hidden or shown.
	ChangeVisibility
)

// Axis identifies the grid axis a structural change applies to.
type Axis int

const (
	// AxisRow marks a change to rows.
	AxisRow Axis = iota
	// AxisColumn marks a change to columns.
	AxisColumn
)

// Change describes one structural mutation of a CellModel.
type Change struct {
	Kind ChangeKind
	// Axis is the affected axis for resize, insert, delete and visibility
	// changes. Merge and split changes affect both axes; Axis is AxisRow
	// for those.
	Axis Axis
	// Range is the affected cell region. For single-axis changes only the
	// bounds of that axis are meaningful.
	Range CellRange
}

// ChangeListener is a callback invoked synchronously for every structural
// change, inside the mutating call. Listeners must not perform long work
// inline and must not mutate the model from within the callback.
type ChangeListener func(Change)

// changeStream is a synchronous in-process dispatcher. Mutating calls
// publish inline to every subscriber, matching the single event loop the
// models are driven from.
type changeStream struct {
	nextID    int
	listeners map[int]ChangeListener
	order     []int
}

func (s *changeStream) subscribe(fn ChangeListener) func() {
	if s.listeners == nil {
		s.listeners = make(map[int]ChangeListener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	return func() {
		delete(s.listeners, id)
		for i, other := range s.order {
			if other == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *changeStream) publish(c Change) {
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			fn(c)
		}
	}
}

func (s *changeStream) close() {
	s.listeners = nil
	s.order = nil
}
