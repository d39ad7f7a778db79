package markup

import "github.com/google/uuid"

// selection is the set of currently selected annotation ids. Selection
// is ephemeral view state: it is never undo-tracked, and every id must
// reference an annotation presently in the document. Dangling ids are
// pruned whenever the annotation list changes.
type selection struct {
	ids map[uuid.UUID]struct{}
}

func newSelection() selection {
	return selection{ids: make(map[uuid.UUID]struct{})}
}

func (s *selection) has(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// add inserts id, reporting whether the set changed.
func (s *selection) add(id uuid.UUID) bool {
	if s.has(id) {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// clear empties the set, reporting whether the set changed.
func (s *selection) clear() bool {
	if len(s.ids) == 0 {
		return false
	}
	s.ids = make(map[uuid.UUID]struct{})
	return true
}

// replace swaps the set for exactly the given ids, reporting whether
// the set changed.
func (s *selection) replace(ids []uuid.UUID) bool {
	if len(ids) == len(s.ids) {
		same := true
		for _, id := range ids {
			if !s.has(id) {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	s.ids = make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return true
}

// prune drops every id for which present returns false, reporting
// whether anything was dropped.
func (s *selection) prune(present func(uuid.UUID) bool) bool {
	changed := false
	for id := range s.ids {
		if !present(id) {
			delete(s.ids, id)
			changed = true
		}
	}
	return changed
}

func (s *selection) len() int { return len(s.ids) }
