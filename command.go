package markup

// commandType identifies the kind of document mutation a command records.
type commandType uint8

// Command types.
const (
	commandAdd commandType = iota
	commandRemove
	commandUpdate
	commandClear
	commandBatch
)

// commandTypeNames maps command types to their string representations.
var commandTypeNames = [...]string{
	"add",
	"remove",
	"update",
	"clear",
	"batch",
}

// String returns the string representation of the command type.
func (t commandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "unknown"
}

// command is an invertible record of one document mutation. apply
// performs the mutation, invert reverses it exactly. Commands store
// only the diff needed for inversion, never whole-document snapshots,
// except clearCommand which has no smaller representation.
type command interface {
	Type() commandType
	apply(d *Document)
	invert(d *Document)
}

// addCommand appends an annotation to the end of the list (topmost).
type addCommand struct {
	ann Annotation
}

func (c addCommand) Type() commandType { return commandAdd }

func (c addCommand) apply(d *Document) {
	d.annotations = append(d.annotations, c.ann.clone())
}

func (c addCommand) invert(d *Document) {
	d.removeAt(d.indexOf(c.ann.ID))
}

// removeCommand deletes an annotation, remembering its prior index so
// inversion restores the original z-order rather than appending.
type removeCommand struct {
	ann   Annotation
	index int
}

func (c removeCommand) Type() commandType { return commandRemove }

func (c removeCommand) apply(d *Document) {
	d.removeAt(d.indexOf(c.ann.ID))
}

func (c removeCommand) invert(d *Document) {
	d.insertAt(c.index, c.ann.clone())
}

// updateCommand replaces an annotation in place, keeping its index.
type updateCommand struct {
	old Annotation
	new Annotation
}

func (c updateCommand) Type() commandType { return commandUpdate }

func (c updateCommand) apply(d *Document) {
	d.replace(c.new.clone())
}

func (c updateCommand) invert(d *Document) {
	d.replace(c.old.clone())
}

// clearCommand empties the annotation list, snapshotting the prior
// contents for inversion.
type clearCommand struct {
	snapshot []Annotation
}

func (c clearCommand) Type() commandType { return commandClear }

func (c clearCommand) apply(d *Document) {
	d.annotations = nil
}

func (c clearCommand) invert(d *Document) {
	restored := make([]Annotation, len(c.snapshot))
	for i, a := range c.snapshot {
		restored[i] = a.clone()
	}
	d.annotations = restored
}

// batchCommand groups sub-commands into one atomic history entry:
// applied in order, inverted in reverse order, undone and redone as
// a single unit.
type batchCommand struct {
	subs []command
}

func (c batchCommand) Type() commandType { return commandBatch }

func (c batchCommand) apply(d *Document) {
	for _, sub := range c.subs {
		sub.apply(d)
	}
}

func (c batchCommand) invert(d *Document) {
	for i := len(c.subs) - 1; i >= 0; i-- {
		c.subs[i].invert(d)
	}
}
