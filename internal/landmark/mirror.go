package landmark

import "strings"

var mirrorIndex = func() [Count]int {
	var out [Count]int
	for i := range out {
		out[i] = i
	}
	for name, i := range Names {
		var partner string
		switch {
		case strings.HasSuffix(name, "_L"):
			partner = strings.TrimSuffix(name, "_L") + "_R"
		case strings.HasSuffix(name, "_R"):
			partner = strings.TrimSuffix(name, "_R") + "_L"
		default:
			continue
		}
		if j, ok := Names[partner]; ok {
			out[i] = j
		}
	}
	return out
}()

// Mirror returns the landmark that i becomes when the face is flipped
// horizontally: left and right partners swap, midline landmarks stay.
func Mirror(i int) (int, error) {
	if err := CheckIndex(i); err != nil {
		return 0, err
	}
	return mirrorIndex[i], nil
}
