package workflow

import "testing"

func TestMatchesWarehouse(t *testing.T) {
	mkAliases := []string{"WH-MK", "MK창고", "mk"}

	tests := []struct {
		name        string
		warehouseCd string
		aliases     []string
		want        bool
	}{
		{"exact alias", "WH-MK", mkAliases, true},
		{"code contains alias", "WH-MK 제2창고", mkAliases, true},
		{"alias contains code", "MK", []string{"WH-MK"}, true},
		{"korean alias", "MK창고", mkAliases, true},
		{"unknown korean code", "알수없는창고", mkAliases, false},
		{"case sensitive", "wh-mk", []string{"WH-MK"}, false},
		{"empty code", "", mkAliases, false},
		{"empty aliases", "WH-MK", nil, false},
		{"empty alias entries ignored", "WH-MK", []string{"", "WH-MK"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesWarehouse(tt.warehouseCd, tt.aliases); got != tt.want {
				t.Errorf("MatchesWarehouse(%q, %v) = %v, want %v", tt.warehouseCd, tt.aliases, got, tt.want)
			}
		})
	}
}
