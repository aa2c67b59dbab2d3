package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupant_Validate(t *testing.T) {
	cases := []struct {
		name     string
		occupant Occupant
		valid    bool
	}{
		{"registered", RegisteredOccupant(42), true},
		{"walk-in with phone", WalkInOccupant("Анна Смирнова", "+7 900 000-00-00"), true},
		{"walk-in without phone", WalkInOccupant("Анна Смирнова", ""), true},
		{"registered with zero user", Occupant{Kind: OccupantRegistered}, false},
		{"registered with guest name", Occupant{Kind: OccupantRegistered, UserID: 42, GuestName: "x"}, false},
		{"walk-in without name", Occupant{Kind: OccupantWalkIn, GuestPhone: "+7"}, false},
		{"walk-in with user id", Occupant{Kind: OccupantWalkIn, GuestName: "x", UserID: 1}, false},
		{"empty", Occupant{}, false},
		{"unknown kind", Occupant{Kind: "corporate"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.occupant.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedOccupant)
			}
		})
	}
}

func TestOccupant_IsRegistered(t *testing.T) {
	assert.True(t, RegisteredOccupant(1).IsRegistered())
	assert.False(t, WalkInOccupant("x", "").IsRegistered())
}
