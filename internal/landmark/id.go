package landmark

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a landmark either by index or by symbolic name.
// The zero value is index 0.
type ID struct {
	index  int
	name   string
	byName bool
}

// Index returns an ID that refers to landmark i.
func Index(i int) ID {
	return ID{index: i}
}

// Name returns an ID that refers to a landmark by its symbolic name.
func Name(name string) ID {
	return ID{name: name, byName: true}
}

// ParseID interprets s as an integer index when it is one, and as a
// symbolic name otherwise. Names are matched case-insensitively.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return Index(i)
	}
	return Name(strings.ToUpper(s))
}

// Resolve returns the landmark index the ID refers to.
func (id ID) Resolve() (int, error) {
	if id.byName {
		i, ok := Names[id.name]
		if !ok {
			return 0, &UnknownNameError{Name: id.name}
		}
		return i, nil
	}
	if err := CheckIndex(id.index); err != nil {
		return 0, err
	}
	return id.index, nil
}

func (id ID) String() string {
	if id.byName {
		return id.name
	}
	return fmt.Sprintf("#%d", id.index)
}
