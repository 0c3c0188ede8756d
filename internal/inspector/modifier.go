package inspector

import (
	"go/token"
	"strings"
)

// Modifier is a set of declared attributes of a member.
type Modifier uint8

const (
	Public Modifier = 1 << iota
	Private
	Abstract
	Embedded
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{Public, "public"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Embedded, "embedded"},
}

// String renders the set space-separated in canonical order.
func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m&n.mod != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

// visibility maps Go's export rule onto public/private.
func visibility(name string) Modifier {
	if token.IsExported(name) {
		return Public
	}
	return Private
}
