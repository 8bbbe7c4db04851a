package models

import "testing"

func TestHorseCount(t *testing.T) {
	cases := []struct {
		name     string
		horses   []Horse
		external int
		want     int
	}{
		{"vazio", nil, 0, 0},
		{"so proprios", []Horse{{ID: 1}, {ID: 2}}, 0, 2},
		{"so externos", nil, 3, 3},
		{"mistura", []Horse{{ID: 1}}, 2, 3},
		{"duplicados contam uma vez", []Horse{{ID: 1}, {ID: 1}, {ID: 2}}, 0, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := FacilityReservation{Horses: tc.horses, ExternalHorses: tc.external}
			if got := r.HorseCount(); got != tc.want {
				t.Fatalf("HorseCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCanManage(t *testing.T) {
	if !CanManage(RoleOwner) || !CanManage(RoleManager) {
		t.Fatalf("owner and manager must manage")
	}
	if CanManage(RoleMember) || CanManage("") {
		t.Fatalf("member must not manage")
	}
}
