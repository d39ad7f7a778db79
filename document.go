package markup

import (
	"fmt"
	"image"

	"github.com/google/uuid"
)

// Document owns one annotated image: the immutable base raster, the
// ordered annotation list (index = z-order, last is topmost), the
// selection, and the undo/redo history.
//
// Every structural change goes through the command-producing mutation
// API so it is history-tracked; the list is never spliced directly.
// A Document is single-owner: callers serialize all mutation and
// selection calls (see package documentation).
type Document struct {
	base    *Canvas
	canvasW int
	canvasH int

	capture    Capture
	hasCapture bool

	annotations []Annotation
	sel         selection
	hist        history

	onChange          []func()
	onSelectionChange []func()
}

// documentOptions holds constructor settings.
type documentOptions struct {
	canvasW int
	canvasH int
}

// DocumentOption configures document creation.
type DocumentOption func(*documentOptions)

// WithCanvasSize sets the canvas size. The canvas must be at least as
// large as the base image; it may exceed it to leave room around the
// capture. Default: the base image size.
func WithCanvasSize(w, h int) DocumentOption {
	return func(o *documentOptions) {
		o.canvasW = w
		o.canvasH = h
	}
}

// NewDocument creates a document over the given base image. The image
// is converted once into an internal buffer and never mutated. A
// zero-sized image is accepted; rendering and export then fail with
// ErrEmptyCanvas.
func NewDocument(base image.Image, opts ...DocumentOption) (*Document, error) {
	if base == nil {
		return nil, ErrNilImage
	}
	c := CanvasFromImage(base)

	o := documentOptions{canvasW: c.Width(), canvasH: c.Height()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.canvasW < c.Width() || o.canvasH < c.Height() {
		return nil, fmt.Errorf("markup: canvas %dx%d smaller than base image %dx%d",
			o.canvasW, o.canvasH, c.Width(), c.Height())
	}

	return &Document{
		base:    c,
		canvasW: o.canvasW,
		canvasH: o.canvasH,
		sel:     newSelection(),
	}, nil
}

// NewDocumentFromCapture creates a document from a capture result,
// keeping the capture identity as document provenance.
func NewDocumentFromCapture(cap Capture, img image.Image, opts ...DocumentOption) (*Document, error) {
	d, err := NewDocument(img, opts...)
	if err != nil {
		return nil, err
	}
	d.capture = cap
	d.hasCapture = true
	Logger().Debug("markup: document from capture",
		"capture", cap.ID.String(), "size", fmt.Sprintf("%dx%d", cap.Width, cap.Height))
	return d, nil
}

// Capture returns the capture identity the document was created from,
// if any.
func (d *Document) Capture() (Capture, bool) {
	return d.capture, d.hasCapture
}

// BaseImage returns the immutable base image.
func (d *Document) BaseImage() image.Image {
	return d.base
}

// CanvasSize returns the canvas dimensions.
func (d *Document) CanvasSize() (w, h int) {
	return d.canvasW, d.canvasH
}

// Len returns the number of annotations.
func (d *Document) Len() int {
	return len(d.annotations)
}

// Annotations returns a copy of the ordered annotation list,
// bottommost first.
func (d *Document) Annotations() []Annotation {
	out := make([]Annotation, len(d.annotations))
	for i, a := range d.annotations {
		out[i] = a.clone()
	}
	return out
}

// AnnotationByID returns the annotation with the given id.
func (d *Document) AnnotationByID(id uuid.UUID) (Annotation, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.annotations[i].clone(), true
	}
	return Annotation{}, false
}

// NextCounterNumber returns one past the highest counter badge number
// in the document, starting at 1.
func (d *Document) NextCounterNumber() int {
	max := 0
	for _, a := range d.annotations {
		if a.Kind == KindCounter && a.Number > max {
			max = a.Number
		}
	}
	return max + 1
}

// AddAnnotation appends a to the annotation list, making it topmost,
// and records the addition. It always succeeds: a zero or colliding id
// is replaced with a fresh one. The stored value is returned.
func (d *Document) AddAnnotation(a Annotation) Annotation {
	a = sanitizeAnnotation(a.clone())
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	} else if d.indexOf(a.ID) >= 0 {
		Logger().Warn("markup: duplicate annotation id on add, assigning fresh id",
			"kind", a.Kind.String())
		a.ID = uuid.New()
	}
	d.hist.record(d, addCommand{ann: a})
	d.afterContentMutation()
	return a
}

// RemoveAnnotation deletes the annotation with the given id, purging
// it from the selection in the same operation. Returns false, with no
// history entry, if the id is not present.
func (d *Document) RemoveAnnotation(id uuid.UUID) bool {
	idx := d.indexOf(id)
	if idx < 0 {
		return false
	}
	d.hist.record(d, removeCommand{ann: d.annotations[idx].clone(), index: idx})
	d.afterContentMutation()
	return true
}

// RemoveAnnotations deletes every listed annotation as one atomic
// history entry: a single undo restores them all at their prior
// z-order. Absent and duplicate ids are skipped; returns false if
// nothing was removed.
func (d *Document) RemoveAnnotations(ids ...uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var subs []command
	// Walk in list order so recorded indices ascend; inverting the
	// batch in reverse then reinserts at the original positions.
	for idx, a := range d.annotations {
		for _, id := range ids {
			if a.ID != id {
				continue
			}
			if _, dup := seen[id]; dup {
				break
			}
			seen[id] = struct{}{}
			subs = append(subs, removeCommand{ann: a.clone(), index: idx})
			break
		}
	}
	switch len(subs) {
	case 0:
		return false
	case 1:
		d.hist.record(d, subs[0])
	default:
		d.hist.record(d, batchCommand{subs: subs})
	}
	d.afterContentMutation()
	return true
}

// UpdateAnnotation replaces the annotation matching a's id, keeping
// its z-order, and records the old and new values. Returns false,
// with no history entry, if the id is not present.
func (d *Document) UpdateAnnotation(a Annotation) bool {
	idx := d.indexOf(a.ID)
	if idx < 0 {
		return false
	}
	d.hist.record(d, updateCommand{
		old: d.annotations[idx].clone(),
		new: sanitizeAnnotation(a.clone()),
	})
	d.afterContentMutation()
	return true
}

// ClearAnnotations removes every annotation as one history entry,
// snapshotting the prior list so undo restores it exactly. Returns
// false, with no history entry, if the list is already empty.
func (d *Document) ClearAnnotations() bool {
	if len(d.annotations) == 0 {
		return false
	}
	snapshot := make([]Annotation, len(d.annotations))
	for i, a := range d.annotations {
		snapshot[i] = a.clone()
	}
	d.hist.record(d, clearCommand{snapshot: snapshot})
	d.afterContentMutation()
	return true
}

// Undo reverts the most recent content mutation. Returns false if
// there is nothing to undo. Selection is re-pruned afterward since
// the annotation list changed.
func (d *Document) Undo() bool {
	if !d.hist.undoLast(d) {
		return false
	}
	d.afterContentMutation()
	return true
}

// Redo re-applies the most recently undone mutation. Returns false if
// there is nothing to redo.
func (d *Document) Redo() bool {
	if !d.hist.redoLast(d) {
		return false
	}
	d.afterContentMutation()
	return true
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool {
	return d.hist.canUndo()
}

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool {
	return d.hist.canRedo()
}

// SelectAt replaces the selection with the topmost annotation hit by
// p: the list is scanned from last (frontmost) to first so the
// visually frontmost shape wins on overlap. A miss clears the
// selection and returns false. Selection changes are not undoable.
func (d *Document) SelectAt(p Point) (uuid.UUID, bool) {
	p = sanitizePoint(p)
	for i := len(d.annotations) - 1; i >= 0; i-- {
		if d.annotations[i].HitTest(p) {
			id := d.annotations[i].ID
			if d.sel.replace([]uuid.UUID{id}) {
				d.notifySelection()
			}
			return id, true
		}
	}
	if d.sel.clear() {
		d.notifySelection()
	}
	return uuid.Nil, false
}

// SelectIn replaces the selection with every annotation intersecting
// r (rubber-band selection). The selected ids are returned in z-order.
func (d *Document) SelectIn(r Rect) []uuid.UUID {
	r = sanitizeRect(r)
	var hits []uuid.UUID
	for _, a := range d.annotations {
		if a.Intersects(r) {
			hits = append(hits, a.ID)
		}
	}
	if d.sel.replace(hits) {
		d.notifySelection()
	}
	return hits
}

// Select adds the annotation with the given id to the selection,
// for callers implementing additive (modifier-click) selection.
// Returns false if the id is not present in the document.
func (d *Document) Select(id uuid.UUID) bool {
	if d.indexOf(id) < 0 {
		return false
	}
	if d.sel.add(id) {
		d.notifySelection()
	}
	return true
}

// DeselectAll empties the selection. Returns false if it was already
// empty.
func (d *Document) DeselectAll() bool {
	if !d.sel.clear() {
		return false
	}
	d.notifySelection()
	return true
}

// Selected returns the selected annotation ids in z-order.
func (d *Document) Selected() []uuid.UUID {
	out := make([]uuid.UUID, 0, d.sel.len())
	for _, a := range d.annotations {
		if d.sel.has(a.ID) {
			out = append(out, a.ID)
		}
	}
	return out
}

// IsSelected reports whether the annotation with the given id is
// selected.
func (d *Document) IsSelected(id uuid.UUID) bool {
	return d.sel.has(id)
}

// OnChange registers a callback invoked after every successful content
// mutation, including undo and redo.
func (d *Document) OnChange(fn func()) {
	if fn == nil {
		return
	}
	d.onChange = append(d.onChange, fn)
}

// OnSelectionChange registers a callback invoked whenever the selected
// set actually changes. Selection changes signal separately from
// content changes.
func (d *Document) OnSelectionChange(fn func()) {
	if fn == nil {
		return
	}
	d.onSelectionChange = append(d.onSelectionChange, fn)
}

// afterContentMutation restores the selection invariant and fires
// change notifications. Dangling selection ids are pruned before
// control returns to the caller.
func (d *Document) afterContentMutation() {
	selChanged := d.sel.prune(func(id uuid.UUID) bool {
		return d.indexOf(id) >= 0
	})
	d.notifyContent()
	if selChanged {
		d.notifySelection()
	}
}

func (d *Document) notifyContent() {
	for _, fn := range d.onChange {
		fn()
	}
}

func (d *Document) notifySelection() {
	for _, fn := range d.onSelectionChange {
		fn()
	}
}

// indexOf returns the list index of the annotation with the given id,
// or -1 if absent.
func (d *Document) indexOf(id uuid.UUID) int {
	for i, a := range d.annotations {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// removeAt deletes the annotation at index i. Out-of-range indices are
// ignored rather than propagated.
func (d *Document) removeAt(i int) {
	if i < 0 || i >= len(d.annotations) {
		return
	}
	d.annotations = append(d.annotations[:i], d.annotations[i+1:]...)
}

// insertAt places a at index i, clamping i into the valid range.
func (d *Document) insertAt(i int, a Annotation) {
	if i < 0 {
		i = 0
	}
	if i > len(d.annotations) {
		i = len(d.annotations)
	}
	d.annotations = append(d.annotations, Annotation{})
	copy(d.annotations[i+1:], d.annotations[i:])
	d.annotations[i] = a
}

// replace swaps the stored annotation with the same id as a. A missing
// id is ignored rather than propagated.
func (d *Document) replace(a Annotation) {
	if i := d.indexOf(a.ID); i >= 0 {
		d.annotations[i] = a
	}
}
