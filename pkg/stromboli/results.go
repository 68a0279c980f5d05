package stromboli

import "fmt"

// CursorPosition is the single system-wide pointer to the currently
// focused (domain, element) pair. Its absence means no focus.
type CursorPosition struct {
	DomainID  string
	ElementID string
	Kind      ElementKind
}

// ResultKind tags the outcome of a directional input or domain switch.
type ResultKind int

const (
	ResultCursorMoved           ResultKind = iota // Cursor moved to a new element
	ResultBoundaryReached                         // Hit the edge of the domain with nowhere to go
	ResultNoActiveDomain                          // No domain is active
	ResultDomainBoundaryCrossed                   // An adjacent domain was found; caller should switch
	ResultDomainSwitched                          // Active domain changed and cursor placed
	ResultError                                   // Operation failed
)

// String returns a string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultCursorMoved:
		return "CursorMoved"
	case ResultBoundaryReached:
		return "BoundaryReached"
	case ResultNoActiveDomain:
		return "NoActiveDomain"
	case ResultDomainBoundaryCrossed:
		return "DomainBoundaryCrossed"
	case ResultDomainSwitched:
		return "DomainSwitched"
	case ResultError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Result is the tagged outcome of HandleInput or SwitchToDomain. Only the
// fields relevant to the Kind are populated:
//
//	CursorMoved:           DomainID, ElementID
//	BoundaryReached:       (none)
//	NoActiveDomain:        (none)
//	DomainBoundaryCrossed: FromDomain, ToDomain, Direction
//	DomainSwitched:        FromDomain, ToDomain, NewElementID
//	Error:                 Message
type Result struct {
	Kind ResultKind

	DomainID  string
	ElementID string

	FromDomain   string
	ToDomain     string
	Direction    Direction
	NewElementID string

	Message string
}

func errorResult(format string, args ...any) Result {
	return Result{Kind: ResultError, Message: fmt.Sprintf(format, args...)}
}
