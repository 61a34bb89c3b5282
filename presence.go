package gont

import "sort"

// Presence is the bit flag reported for optional members of a structure.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Member exists in the structure.
	PresenceMatched                      // Member exists and has the required shape.
)

// PresenceMap maps JSON Pointers of optional members to Presence flags.
// Absent members have no entry.
type PresenceMap map[string]Presence

// Has reports whether the member at pointer p exists.
func (pm PresenceMap) Has(p string) bool { return pm[p]&PresenceSeen != 0 }

// Matched reports whether the member at pointer p exists with the required
// shape.
func (pm PresenceMap) Matched(p string) bool { return pm[p]&PresenceMatched != 0 }

// Paths returns the pointers of present members in ascending order.
func (pm PresenceMap) Paths() []string {
	out := make([]string, 0, len(pm))
	for k, v := range pm {
		if v&PresenceSeen != 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// mergePresenceMaps returns a new PresenceMap that is the bitwise-OR merge of a and b.
func mergePresenceMaps(a, b PresenceMap) PresenceMap {
	if a == nil && b == nil {
		return nil
	}
	out := make(PresenceMap, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] |= v
	}
	return out
}
