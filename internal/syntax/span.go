package syntax

import "fmt"

// SourceID identifies a loaded source file. The zero value is reserved for
// values that did not originate from any source ("detached").
type SourceID uint16

// Detached is the id carried by spans and closures without a source.
const Detached SourceID = 0

func (id SourceID) IsDetached() bool { return id == Detached }

// Span is a half-open byte interval [Start, End) in a source file.
type Span struct {
	Source SourceID
	Start  int
	End    int
}

// DetachedSpan marks synthesized values with no source location.
var DetachedSpan = Span{}

func NewSpan(source SourceID, start, end int) Span {
	return Span{Source: source, Start: start, End: end}
}

func (s Span) IsDetached() bool {
	return s.Source.IsDetached() && s.Start == 0 && s.End == 0
}

func (s Span) String() string {
	if s.IsDetached() {
		return "<detached>"
	}
	return fmt.Sprintf("%d:%d-%d", s.Source, s.Start, s.End)
}
