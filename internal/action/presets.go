package action

import (
	"fmt"
	"sort"
	"strings"

	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/reference"
)

// Default preset scales.
const (
	DefaultChubbifyScale        = 0.2
	DefaultOpenEyesScale        = 0.1
	DefaultSmileScale           = 0.1
	DefaultRaiseEyebrowScale    = 0.1
	DefaultStretchNostrilsScale = 0.1
)

// Preset is a named, fixed Lambda table. Scale, Reference and
// Interpolation may be changed before Perform.
type Preset struct {
	Name          string
	Scale         float64
	Specs         []Spec
	Reference     reference.Factory
	Interpolation displacement.Options
}

func newPreset(name string, scale float64, specs []Spec) *Preset {
	return &Preset{Name: name, Scale: scale, Specs: specs, Reference: reference.DefaultFactory}
}

// Lambda returns the Lambda the preset delegates to.
func (p *Preset) Lambda() *Lambda {
	l := NewLambda(p.Scale, p.Specs, p.Reference)
	l.Interpolation = p.Interpolation
	return l
}

func (p *Preset) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	nf, df, err := p.Lambda().Perform(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return nf, df, nil
}

func named(name string, angle, proportion float64) Spec {
	return Spec{Landmark: landmark.Name(name), Angle: angle, Proportion: proportion}
}

var chubbifySpecs = []Spec{
	named("LOWER_TEMPLE_L", 170, 0.4),
	named("LOWER_TEMPLE_R", 10, 0.4),
	named("UPPERMOST_CHEEK_L", 160, 1),
	named("UPPERMOST_CHEEK_R", 20, 1),
	named("UPPER_CHEEK_L", 150, 1),
	named("UPPER_CHEEK_R", 30, 1),
	named("LOWER_CHEEK_L", 140, 1),
	named("LOWER_CHEEK_R", 40, 1),
	named("LOWERMOST_CHEEK_L", 130, 0.8),
	named("LOWERMOST_CHEEK_R", 50, 0.8),
	named("CHIN_L", 120, 0.7),
	named("CHIN_R", 60, 0.7),
	named("CHIN", 90, 0.7),
}

var openEyesSpecs = []Spec{
	named("INNER_EYE_LID_R", -100, 0.8),
	named("OUTER_EYE_LID_R", -80, 1),
	named("INNER_EYE_BOTTOM_R", 100, 0.5),
	named("OUTER_EYE_BOTTOM_R", 80, 0.5),
	named("INNERMOST_EYEBROW_R", -100, 1),
	named("INNER_EYEBROW_R", -100, 1),
	named("MIDDLE_EYEBROW_R", -100, 1),
	named("OUTER_EYEBROW_R", -100, 1),
	named("OUTERMOST_EYEBROW_R", -100, 1),
	named("INNER_EYE_LID_L", -80, 0.8),
	named("OUTER_EYE_LID_L", -100, 1),
	named("INNER_EYE_BOTTOM_L", 80, 0.5),
	named("OUTER_EYE_BOTTOM_L", 10, 0.5),
	named("INNERMOST_EYEBROW_L", -80, 1),
	named("INNER_EYEBROW_L", -80, 1),
	named("MIDDLE_EYEBROW_L", -80, 1),
	named("OUTER_EYEBROW_L", -80, 1),
	named("OUTERMOST_EYEBROW_L", -80, 1),
}

var smileSpecs = []Spec{
	named("OUTSIDE_MOUTH_CORNER_L", -110, 1),
	named("OUTSIDE_MOUTH_CORNER_R", -70, 1),
	named("INSIDE_MOUTH_CORNER_L", -110, 0.8),
	named("INSIDE_MOUTH_CORNER_R", -70, 0.8),
	named("OUTER_OUTSIDE_UPPER_LIP_L", -100, 0.3),
	named("OUTER_OUTSIDE_UPPER_LIP_R", -80, 0.3),
}

var stretchNostrilsSpecs = []Spec{
	named("OUTER_NOSTRIL_L", -135, 1),
	named("OUTER_NOSTRIL_R", -45, 1),
}

func eyebrowSpecs(side string) []Spec {
	return []Spec{
		named("OUTERMOST_EYEBROW_"+side, -90, 1),
		named("OUTER_EYEBROW_"+side, -90, 0.8),
		named("MIDDLE_EYEBROW_"+side, -90, 0.6),
		named("INNER_EYEBROW_"+side, -90, 0.4),
		named("INNERMOST_EYEBROW_"+side, -90, 0.2),
	}
}

func copySpecs(specs []Spec) []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Chubbify pushes the cheeks and jaw outwards.
func Chubbify(scale float64) *Preset {
	return newPreset("chubbify", scale, copySpecs(chubbifySpecs))
}

// OpenEyes widens the eyes and lifts the eyebrows.
func OpenEyes(scale float64) *Preset {
	return newPreset("open_eyes", scale, copySpecs(openEyesSpecs))
}

// Smile lifts the mouth corners.
func Smile(scale float64) *Preset {
	return newPreset("smile", scale, copySpecs(smileSpecs))
}

// StretchNostrils widens the nostrils.
func StretchNostrils(scale float64) *Preset {
	return newPreset("stretch_nostrils", scale, copySpecs(stretchNostrilsSpecs))
}

// Eyebrow sides accepted by RaiseEyebrow.
const (
	SideLeft  = "left"
	SideRight = "right"
	SideBoth  = "both"
)

// RaiseEyebrow lifts one or both eyebrows, the outer end most.
func RaiseEyebrow(scale float64, side string) (*Preset, error) {
	var specs []Spec
	switch strings.ToLower(side) {
	case SideLeft:
		specs = eyebrowSpecs("L")
	case SideRight:
		specs = eyebrowSpecs("R")
	case SideBoth, "":
		specs = append(eyebrowSpecs("L"), eyebrowSpecs("R")...)
	default:
		return nil, fmt.Errorf("action: raise eyebrow: unknown side %q", side)
	}
	return newPreset("raise_eyebrow", scale, specs), nil
}

// PresetInfo describes a registered preset.
type PresetInfo struct {
	Name         string
	Description  string
	DefaultScale float64
	Build        func(scale float64) *Preset
}

var presets = map[string]PresetInfo{
	"chubbify": {
		Name: "chubbify", Description: "push cheeks and jaw outwards",
		DefaultScale: DefaultChubbifyScale, Build: Chubbify,
	},
	"open_eyes": {
		Name: "open_eyes", Description: "widen eyes and lift eyebrows",
		DefaultScale: DefaultOpenEyesScale, Build: OpenEyes,
	},
	"smile": {
		Name: "smile", Description: "lift the mouth corners",
		DefaultScale: DefaultSmileScale, Build: Smile,
	},
	"stretch_nostrils": {
		Name: "stretch_nostrils", Description: "widen the nostrils",
		DefaultScale: DefaultStretchNostrilsScale, Build: StretchNostrils,
	},
	"raise_eyebrow": {
		Name: "raise_eyebrow", Description: "lift both eyebrows",
		DefaultScale: DefaultRaiseEyebrowScale,
		Build: func(scale float64) *Preset {
			p, _ := RaiseEyebrow(scale, SideBoth)
			return p
		},
	},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (PresetInfo, bool) {
	info, ok := presets[strings.ToLower(name)]
	return info, ok
}

// PresetNames lists registered presets alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
