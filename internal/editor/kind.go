package editor

import (
	"errors"
	"fmt"
)

// Kind names one document kind.
type Kind string

const (
	KindItems       Kind = "items"
	KindSkills      Kind = "skills"
	KindFixedSkills Kind = "fixedskills"
	KindSkillTrees  Kind = "skilltrees"
)

// Kinds lists every document kind in load order.
var Kinds = []Kind{KindItems, KindSkills, KindFixedSkills, KindSkillTrees}

var ErrUnknownKind = errors.New("unknown document kind")

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
