// Package team models how a hole's sides are formed: the captain offers a
// partnership, goes solo, or fields join requests from the aardvark.
package team

// Kind identifies the active team formation variant for a hole.
type Kind int

const (
	// KindUnspecified represents an invalid formation value.
	KindUnspecified Kind = iota
	// KindPending means the captain has not yet committed to a formation.
	KindPending
	// KindOffered means a partnership offer is waiting on the candidate.
	KindOffered
	// KindPartners means two sides are settled.
	KindPartners
	// KindSolo means the captain plays alone against the field.
	KindSolo
	// KindJoined means the aardvark has been placed on a side.
	KindJoined
)

// String returns the formation name used in events and logs.
func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindOffered:
		return "offered"
	case KindPartners:
		return "partners"
	case KindSolo:
		return "solo"
	case KindJoined:
		return "joined"
	default:
		return "unspecified"
	}
}

// SideID names one of the two sides of a hole.
type SideID string

const (
	// SideA is the captain's side.
	SideA SideID = "a"
	// SideB is the side opposing the captain.
	SideB SideID = "b"
)

// Other returns the opposing side.
func (s SideID) Other() SideID {
	if s == SideA {
		return SideB
	}
	return SideA
}

// JoinRequest tracks a pending or tossed aardvark join request.
type JoinRequest struct {
	Aardvark  string
	Requested SideID
	// Tossed is true once the requested side has thrown the aardvark back,
	// leaving the other side the chance to counter-toss.
	Tossed bool
}

// State is the tagged team formation variant for one hole. Exactly one
// state is active per hole; which fields are meaningful depends on Kind.
type State struct {
	Kind      Kind
	Captain   string
	Candidate string   // Offered: the invited partner
	SideA     []string // Partners/Joined: captain's side
	SideB     []string // Partners/Joined: opposing side
	Soloist   string   // Solo
	Opponents []string // Solo
	Aardvark  string   // floating player awaiting placement, empty when none
	Join      *JoinRequest
}

// Final reports whether formation is settled and every player has a side.
func (s State) Final() bool {
	switch s.Kind {
	case KindSolo:
		return true
	case KindPartners, KindJoined:
		return s.Aardvark == "" && s.Join == nil
	default:
		return false
	}
}

// Sides returns the two sides of a final formation. For a solo hole the
// soloist is side A.
func (s State) Sides() (a, b []string) {
	if s.Kind == KindSolo {
		return []string{s.Soloist}, append([]string(nil), s.Opponents...)
	}
	return append([]string(nil), s.SideA...), append([]string(nil), s.SideB...)
}

// SideOf returns the side a player belongs to.
func (s State) SideOf(id string) (SideID, bool) {
	a, b := s.Sides()
	for _, pid := range a {
		if pid == id {
			return SideA, true
		}
	}
	for _, pid := range b {
		if pid == id {
			return SideB, true
		}
	}
	return "", false
}

// Members returns the players on one side.
func (s State) Members(side SideID) []string {
	a, b := s.Sides()
	if side == SideA {
		return a
	}
	return b
}

// IsSolo reports whether the hole is played one against the field.
func (s State) IsSolo() bool {
	return s.Kind == KindSolo
}
