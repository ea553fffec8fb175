package state

// Text is an optional field value. The zero Text means "not supplied", which
// is distinct from an explicit empty string.
type Text struct {
	value string
	set   bool
}

// NoText returns an unset Text.
func NoText() Text {
	return Text{}
}

// SetText returns a Text carrying v, including the empty string.
func SetText(v string) Text {
	return Text{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (t Text) Get() (string, bool) {
	return t.value, t.set
}

// ChangeKind enumerates what a Change does to a message sequence.
type ChangeKind uint8

const (
	// ChangeKeep leaves the sequence untouched.
	ChangeKeep ChangeKind = iota
	// ChangeClear empties the sequence.
	ChangeClear
	// ChangeAppend appends one message to the tail.
	ChangeAppend
)

// Change is the update applied to a field's error or warning sequence. The
// zero Change keeps the sequence as it is.
type Change struct {
	kind    ChangeKind
	message string
}

// Keep returns a no-op change.
func Keep() Change {
	return Change{}
}

// Clear returns a change that empties the sequence.
func Clear() Change {
	return Change{kind: ChangeClear}
}

// Append returns a change that appends msg.
func Append(msg string) Change {
	return Change{kind: ChangeAppend, message: msg}
}

// Kind reports the change kind.
func (c Change) Kind() ChangeKind {
	return c.kind
}

// Message returns the appended message; empty for Keep and Clear.
func (c Change) Message() string {
	return c.message
}

func (c Change) apply(src []string) []string {
	switch c.kind {
	case ChangeClear:
		return []string{}
	case ChangeAppend:
		return appendMessage(src, c.message)
	default:
		if src == nil {
			return []string{}
		}
		return src
	}
}
