package holdem

import "testing"

func TestSeatNormalizesNegativeButtonValues(t *testing.T) {
	cases := map[int]int{
		-2: 0,
		-1: 1,
		0:  0,
		1:  1,
		2:  0,
		3:  1,
	}
	for button, want := range cases {
		if got := Seat(button); got != want {
			t.Errorf("Seat(%d) = %d, want %d", button, got, want)
		}
	}
}

func TestActionTypeStringDictionary(t *testing.T) {
	cases := map[ActionType]string{
		ActionFold:   "FOLD",
		ActionCall:   "CALL",
		ActionCheck:  "CHECK",
		ActionRaise:  "RAISE",
		ActionAssign: "ASSIGN",
	}
	for tpe, want := range cases {
		if got := tpe.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", tpe, got, want)
		}
	}
	if got := ActionType(255).String(); got != "UNKNOWN" {
		t.Errorf("unknown ActionType.String() = %q, want UNKNOWN", got)
	}
}

func TestStreetString(t *testing.T) {
	cases := map[Street]string{
		StreetPreflop: "Preflop",
		StreetFlop:    "Flop",
		StreetTurn:    "Turn",
		StreetRiver:   "River",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", s, got, want)
		}
	}
}
