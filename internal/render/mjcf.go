package render

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Minimal MJCF reader: the body/joint/geom subset the preview renderer
// needs. Everything else in a description file is ignored.

type mjcfFile struct {
	XMLName   xml.Name `xml:"mujoco"`
	ModelName string   `xml:"model,attr"`
	Worldbody mjcfBody `xml:"worldbody"`
}

type mjcfBody struct {
	Name   string      `xml:"name,attr"`
	Pos    string      `xml:"pos,attr"`
	Joints []mjcfJoint `xml:"joint"`
	Geoms  []mjcfGeom  `xml:"geom"`
	Bodies []mjcfBody  `xml:"body"`
}

type mjcfJoint struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Axis string `xml:"axis,attr"`
}

type mjcfGeom struct {
	Type string `xml:"type,attr"`
	Size string `xml:"size,attr"`
}

func parseMJCF(path string) (*mjcfFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read model description: %w", err)
	}
	var doc mjcfFile
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("render: parse model description %s: %w", path, err)
	}
	if len(doc.Worldbody.Bodies) == 0 {
		return nil, fmt.Errorf("render: model description %s has an empty worldbody", path)
	}
	return &doc, nil
}

// parseVec3 reads a whitespace-separated attribute like pos="0 0 1".
// Missing attributes default to the zero vector.
func parseVec3(attr string) (vec3, error) {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return vec3{}, nil
	}
	fields := strings.Fields(attr)
	if len(fields) != 3 {
		return vec3{}, fmt.Errorf("render: expected 3 components in %q", attr)
	}
	var v vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec3{}, fmt.Errorf("render: bad vector component %q: %w", f, err)
		}
		v[i] = x
	}
	return v, nil
}

func parseScalarAttr(attr string, fallback float64) float64 {
	fields := strings.Fields(attr)
	if len(fields) == 0 {
		return fallback
	}
	if x, err := strconv.ParseFloat(fields[0], 64); err == nil {
		return x
	}
	return fallback
}
