package markup

// history is a linear undo/redo log. Both stacks hold their
// most-recent entry last. Depth is unbounded: commands store diffs,
// so memory cost is bounded by session length.
type history struct {
	undo []command
	redo []command
}

// record applies cmd to the document, pushes it onto the undo stack,
// and discards the redo stack. Any fresh mutation forfeits redo.
func (h *history) record(d *Document, cmd command) {
	cmd.apply(d)
	h.undo = append(h.undo, cmd)
	h.redo = nil
	Logger().Debug("markup: recorded command",
		"type", cmd.Type().String(), "depth", len(h.undo))
}

// undoLast pops the most recent command, inverts it, and moves it to
// the redo stack. Returns false when there is nothing to undo.
func (h *history) undoLast(d *Document) bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.invert(d)
	h.redo = append(h.redo, cmd)
	Logger().Debug("markup: undo", "type", cmd.Type().String(), "depth", len(h.undo))
	return true
}

// redoLast pops the most recent undone command, re-applies it, and
// moves it back to the undo stack. Returns false when there is
// nothing to redo.
func (h *history) redoLast(d *Document) bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.apply(d)
	h.undo = append(h.undo, cmd)
	Logger().Debug("markup: redo", "type", cmd.Type().String(), "depth", len(h.undo))
	return true
}

func (h *history) canUndo() bool { return len(h.undo) > 0 }

func (h *history) canRedo() bool { return len(h.redo) > 0 }
