package face

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"facewarp/internal/landmark"

	"gopkg.in/yaml.v3"
)

// LoadLandmarks reads a YAML or JSON list of [x, y] pairs.
func LoadLandmarks(path string) ([]landmark.Point, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("face: read %s: %w", path, err)
	}

	pts, err := ParseLandmarks(raw)
	if err != nil {
		return nil, fmt.Errorf("face: parse %s: %w", path, err)
	}
	return pts, nil
}

// ParseLandmarks decodes a YAML (or JSON) list of [x, y] pairs and checks
// that there are exactly landmark.Count of them.
func ParseLandmarks(raw []byte) ([]landmark.Point, error) {
	var pairs [][]float64
	if err := yaml.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}
	pts := make([]landmark.Point, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2", i, len(p))
		}
		pts[i] = landmark.Point{X: p[0], Y: p[1]}
	}
	if err := landmark.CheckShape(pts); err != nil {
		return nil, err
	}
	return pts, nil
}

// SaveLandmarks writes points as [x, y] pairs; .yaml/.yml paths get YAML,
// everything else gets JSON-compatible flow YAML.
func SaveLandmarks(path string, pts []landmark.Point) error {
	ext := strings.ToLower(filepath.Ext(path))
	var sb strings.Builder
	if ext == ".yaml" || ext == ".yml" {
		for _, p := range pts {
			fmt.Fprintf(&sb, "- [%g, %g]\n", p.X, p.Y)
		}
	} else {
		sb.WriteString("[\n")
		for i, p := range pts {
			fmt.Fprintf(&sb, "  [%g, %g]", p.X, p.Y)
			if i < len(pts)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("]\n")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("face: mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("face: write %s: %w", path, err)
	}
	return nil
}

// Load reads an image and its landmark file into a Face.
func Load(imagePath, landmarksPath string) (*Face, error) {
	img, err := LoadImage(imagePath)
	if err != nil {
		return nil, err
	}
	pts, err := LoadLandmarks(landmarksPath)
	if err != nil {
		return nil, err
	}
	return Wrap(pts, img)
}
