package bitfields

import (
	"strconv"
	"strings"
)

// AssignmentOfTag parses a struct-tag flag declaration into an assignment.
// Two forms are accepted:
//
//	"seller;insane;sensible"       implicit, auto-numbered from weight 1
//	"1:seller;2:insane;4:sensible" explicit weight:name pairs
//
// Mixing the two forms in one tag is a configuration error.
func AssignmentOfTag(tag string) (*Assignment, error) {
	var (
		names              []string
		weighted           = map[uint64]string{}
		explicit, implicit bool
	)
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, ':'); i >= 0 {
			explicit = true
			weight, err := strconv.ParseUint(strings.TrimSpace(part[:i]), 10, 64)
			if err != nil {
				return nil, &ConfigurationError{Name: part, Msg: "bad weight in tag: " + err.Error()}
			}
			weighted[weight] = strings.TrimSpace(part[i+1:])
		} else {
			implicit = true
			names = append(names, part)
		}
	}
	if explicit && implicit {
		return nil, &ConfigurationError{Msg: "tag mixes weighted and auto-numbered flags"}
	}
	if explicit {
		return NewAssignment(weighted)
	}
	return NewAssignmentOf(names...)
}
