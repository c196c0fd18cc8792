package workflow

import "strings"

// MatchesWarehouse reports whether a free-text warehouse code from the
// ERP belongs to a warehouse with the given alias list. The match is a
// case-sensitive substring containment in either direction: ERP entries
// abbreviate ("MK") as often as they embellish ("WH-MK 제2창고").
func MatchesWarehouse(warehouseCd string, aliases []string) bool {
	if warehouseCd == "" {
		return false
	}
	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		if strings.Contains(warehouseCd, alias) || strings.Contains(alias, warehouseCd) {
			return true
		}
	}
	return false
}
