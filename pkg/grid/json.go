package grid

import (
	"encoding/json"
	"fmt"

	"github.com/ladybug-tools/daylightgrid/pkg/geo"
)

// Serialization covers the grid name and the point geometry, plus an
// optional value snapshot for the default source and state. Result-file
// descriptors are deliberately not serialized: a deserialized grid starts
// in the raw state.

type sampleJSON struct {
	Hoy    int      `json:"hoy"`
	Total  float64  `json:"total"`
	Direct *float64 `json:"direct,omitempty"`
}

type pointJSON struct {
	Location  [3]float64   `json:"location"`
	Direction [3]float64   `json:"direction"`
	Values    []sampleJSON `json:"values,omitempty"`
}

type gridJSON struct {
	Name         string      `json:"name"`
	WindowGroups []string    `json:"window_groups,omitempty"`
	Points       []pointJSON `json:"analysis_points"`
}

// ToJSON serializes the grid.
func (g *AnalysisGrid) ToJSON() ([]byte, error) {
	doc := gridJSON{
		Name:         g.name,
		WindowGroups: g.windowGroups,
		Points:       make([]pointJSON, len(g.points)),
	}
	for i, p := range g.points {
		pj := pointJSON{
			Location:  [3]float64{p.Location.X, p.Location.Y, p.Location.Z},
			Direction: [3]float64{p.Direction.X, p.Direction.Y, p.Direction.Z},
		}
		// snapshot the default source/state series only
		if p.HasValues() && len(p.values[0]) > 0 {
			for _, hoy := range p.Hoys() {
				s := p.values[0][0][hoy]
				sj := sampleJSON{Hoy: hoy, Total: s.Total}
				if s.HasDirect {
					d := s.Direct
					sj.Direct = &d
				}
				pj.Values = append(pj.Values, sj)
			}
		}
		doc.Points[i] = pj
	}
	return json.Marshal(doc)
}

// FromJSON reconstructs a grid serialized with ToJSON. Snapshot values are
// restored under the default source and state.
func FromJSON(data []byte) (*AnalysisGrid, error) {
	var doc gridJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing analysis grid JSON: %w", err)
	}
	points := make([]*AnalysisPoint, len(doc.Points))
	for i, pj := range doc.Points {
		p := NewAnalysisPoint(
			geo.Pt(pj.Location[0], pj.Location[1], pj.Location[2]),
			geo.Pt(pj.Direction[0], pj.Direction[1], pj.Direction[2]),
		)
		for _, sj := range pj.Values {
			if sj.Direct != nil {
				p.SetCoupledValue(sj.Total, *sj.Direct, sj.Hoy, "", "")
			} else {
				p.SetValue(sj.Total, sj.Hoy, "", "", false)
			}
		}
		points[i] = p
	}
	return New(points, doc.Name, doc.WindowGroups), nil
}
