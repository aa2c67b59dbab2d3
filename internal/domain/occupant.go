package domain

import "errors"

// OccupantKind discriminates the two occupant variants
type OccupantKind string

const (
	OccupantRegistered OccupantKind = "registered"
	OccupantWalkIn     OccupantKind = "walk_in"
)

var (
	// ErrMalformedOccupant is returned for an occupant that is neither a
	// registered user nor a walk-in with a name
	ErrMalformedOccupant = errors.New("occupant must be a registered user or a walk-in with a name")
)

// Occupant identifies who holds a booking: either a registered athlete by
// user id, or a walk-in identified by free-text name and phone.
// Exactly one variant is populated; build values through RegisteredOccupant
// or WalkInOccupant.
type Occupant struct {
	Kind       OccupantKind
	UserID     int64  // registered only
	GuestName  string // walk-in only
	GuestPhone string // walk-in only, optional
}

// RegisteredOccupant builds an occupant referencing a registered user
func RegisteredOccupant(userID int64) Occupant {
	return Occupant{Kind: OccupantRegistered, UserID: userID}
}

// WalkInOccupant builds a walk-in occupant identified by name and phone
func WalkInOccupant(name, phone string) Occupant {
	return Occupant{Kind: OccupantWalkIn, GuestName: name, GuestPhone: phone}
}

// Validate checks that exactly one variant is populated
func (o Occupant) Validate() error {
	switch o.Kind {
	case OccupantRegistered:
		if o.UserID <= 0 || o.GuestName != "" || o.GuestPhone != "" {
			return ErrMalformedOccupant
		}
	case OccupantWalkIn:
		if o.GuestName == "" || o.UserID != 0 {
			return ErrMalformedOccupant
		}
	default:
		return ErrMalformedOccupant
	}
	return nil
}

// IsRegistered returns true for the registered-user variant
func (o Occupant) IsRegistered() bool {
	return o.Kind == OccupantRegistered
}
