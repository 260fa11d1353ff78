package landmark

import "sort"

// Names maps symbolic landmark names to indices in the 68-point model.
// Left and right follow the subject's image side (L = lower x).
var Names = map[string]int{
	// Jaw line
	"UPPER_TEMPLE_L":    0,
	"MIDDLE_TEMPLE_L":   1,
	"LOWER_TEMPLE_L":    2,
	"UPPERMOST_CHEEK_L": 3,
	"UPPER_CHEEK_L":     4,
	"LOWER_CHEEK_L":     5,
	"LOWERMOST_CHEEK_L": 6,
	"CHIN_L":            7,
	"CHIN":              8,
	"CHIN_R":            9,
	"LOWERMOST_CHEEK_R": 10,
	"LOWER_CHEEK_R":     11,
	"UPPER_CHEEK_R":     12,
	"UPPERMOST_CHEEK_R": 13,
	"LOWER_TEMPLE_R":    14,
	"MIDDLE_TEMPLE_R":   15,
	"UPPER_TEMPLE_R":    16,

	// Eyebrows
	"OUTERMOST_EYEBROW_L": 17,
	"OUTER_EYEBROW_L":     18,
	"MIDDLE_EYEBROW_L":    19,
	"INNER_EYEBROW_L":     20,
	"INNERMOST_EYEBROW_L": 21,
	"INNERMOST_EYEBROW_R": 22,
	"INNER_EYEBROW_R":     23,
	"MIDDLE_EYEBROW_R":    24,
	"OUTER_EYEBROW_R":     25,
	"OUTERMOST_EYEBROW_R": 26,

	// Nose
	"UPPERMOST_NOSE":  27,
	"UPPER_NOSE":      28,
	"LOWER_NOSE":      29,
	"LOWERMOST_NOSE":  30,
	"OUTER_NOSTRIL_L": 31,
	"INNER_NOSTRIL_L": 32,
	"MIDDLE_NOSTRIL":  33,
	"INNER_NOSTRIL_R": 34,
	"OUTER_NOSTRIL_R": 35,

	// Eyes
	"OUTER_EYE_CORNER_L": 36,
	"OUTER_EYE_LID_L":    37,
	"INNER_EYE_LID_L":    38,
	"INNER_EYE_CORNER_L": 39,
	"INNER_EYE_BOTTOM_L": 40,
	"OUTER_EYE_BOTTOM_L": 41,
	"INNER_EYE_CORNER_R": 42,
	"INNER_EYE_LID_R":    43,
	"OUTER_EYE_LID_R":    44,
	"OUTER_EYE_CORNER_R": 45,
	"OUTER_EYE_BOTTOM_R": 46,
	"INNER_EYE_BOTTOM_R": 47,

	// Mouth, outer contour
	"OUTSIDE_MOUTH_CORNER_L":    48,
	"OUTER_OUTSIDE_UPPER_LIP_L": 49,
	"INNER_OUTSIDE_UPPER_LIP_L": 50,
	"MIDDLE_OUTSIDE_UPPER_LIP":  51,
	"INNER_OUTSIDE_UPPER_LIP_R": 52,
	"OUTER_OUTSIDE_UPPER_LIP_R": 53,
	"OUTSIDE_MOUTH_CORNER_R":    54,
	"OUTER_OUTSIDE_LOWER_LIP_R": 55,
	"INNER_OUTSIDE_LOWER_LIP_R": 56,
	"MIDDLE_OUTSIDE_LOWER_LIP":  57,
	"INNER_OUTSIDE_LOWER_LIP_L": 58,
	"OUTER_OUTSIDE_LOWER_LIP_L": 59,

	// Mouth, inner contour
	"INSIDE_MOUTH_CORNER_L":   60,
	"INSIDE_UPPER_LIP_L":      61,
	"MIDDLE_INSIDE_UPPER_LIP": 62,
	"INSIDE_UPPER_LIP_R":      63,
	"INSIDE_MOUTH_CORNER_R":   64,
	"INSIDE_LOWER_LIP_R":      65,
	"MIDDLE_INSIDE_LOWER_LIP": 66,
	"INSIDE_LOWER_LIP_L":      67,
}

var namesByIndex = func() [Count]string {
	var out [Count]string
	for name, i := range Names {
		out[i] = name
	}
	return out
}()

// NameOf returns the symbolic name of index i, or "" if i is out of range.
func NameOf(i int) string {
	if i < 0 || i >= Count {
		return ""
	}
	return namesByIndex[i]
}

// SortedNames returns all names ordered by landmark index.
func SortedNames() []string {
	out := make([]string, 0, len(Names))
	for name := range Names {
		out = append(out, name)
	}
	sort.Slice(out, func(a, b int) bool { return Names[out[a]] < Names[out[b]] })
	return out
}
