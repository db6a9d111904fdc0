package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Engine is the rendering backend contract: load a model description, pose
// it, rasterize a frame. The built-in software engine below draws an
// articulated stick figure; a physics-engine binding could replace it
// without touching the pipeline.
type Engine interface {
	Load(path string) (Model, error)
}

// Model is one loaded articulated body. Not safe for concurrent use; the
// batch pipeline renders sequentially by design.
type Model interface {
	// DOF is the length of the pose vector SetPose expects.
	DOF() int
	// RestPose is the default configuration: zero angles, identity
	// orientations.
	RestPose() []float64
	SetPose(pose []float64) error
	Render(cam Camera, width, height int) (image.Image, error)
	Close()
}

type softEngine struct{}

// NewSoftwareEngine returns the built-in stick-figure renderer.
func NewSoftwareEngine() Engine {
	return softEngine{}
}

type jointKind int

const (
	jointHinge jointKind = iota
	jointSlide
	jointBall
	jointFree
)

func (k jointKind) dof() int {
	switch k {
	case jointFree:
		return 7
	case jointBall:
		return 4
	}
	return 1
}

type bodyNode struct {
	name     string
	offset   vec3
	joints   []bodyJoint
	radius   float64
	parent   int // index into softModel.bodies, -1 for children of the world
	worldPos vec3
}

type bodyJoint struct {
	kind jointKind
	axis vec3
}

type softModel struct {
	name   string
	bodies []bodyNode
	dof    int
	pose   []float64
}

func (softEngine) Load(path string) (Model, error) {
	doc, err := parseMJCF(path)
	if err != nil {
		return nil, err
	}
	m := &softModel{name: doc.ModelName}
	for i := range doc.Worldbody.Bodies {
		if err := m.addBody(&doc.Worldbody.Bodies[i], -1); err != nil {
			return nil, err
		}
	}
	m.pose = m.RestPose()
	return m, nil
}

func (m *softModel) addBody(src *mjcfBody, parent int) error {
	offset, err := parseVec3(src.Pos)
	if err != nil {
		return err
	}
	node := bodyNode{
		name:   src.Name,
		offset: offset,
		radius: 0.05,
		parent: parent,
	}
	for _, g := range src.Geoms {
		if strings.EqualFold(g.Type, "sphere") || g.Type == "" {
			node.radius = parseScalarAttr(g.Size, node.radius)
			break
		}
	}
	for _, j := range src.Joints {
		bj := bodyJoint{axis: vec3{0, 0, 1}}
		switch strings.ToLower(j.Type) {
		case "free":
			bj.kind = jointFree
		case "ball":
			bj.kind = jointBall
		case "slide":
			bj.kind = jointSlide
		case "hinge", "":
			bj.kind = jointHinge
		default:
			return fmt.Errorf("render: unsupported joint type %q on body %q", j.Type, src.Name)
		}
		if j.Axis != "" {
			axis, err := parseVec3(j.Axis)
			if err != nil {
				return err
			}
			bj.axis = axis
		}
		node.joints = append(node.joints, bj)
		m.dof += bj.kind.dof()
	}
	m.bodies = append(m.bodies, node)
	idx := len(m.bodies) - 1
	for i := range src.Bodies {
		if err := m.addBody(&src.Bodies[i], idx); err != nil {
			return err
		}
	}
	return nil
}

func (m *softModel) DOF() int { return m.dof }

func (m *softModel) RestPose() []float64 {
	pose := make([]float64, 0, m.dof)
	for _, b := range m.bodies {
		for _, j := range b.joints {
			switch j.kind {
			case jointFree:
				pose = append(pose, 0, 0, 0, 1, 0, 0, 0)
			case jointBall:
				pose = append(pose, 1, 0, 0, 0)
			default:
				pose = append(pose, 0)
			}
		}
	}
	return pose
}

func (m *softModel) SetPose(pose []float64) error {
	if len(pose) != m.dof {
		return fmt.Errorf("render: pose has %d values, model %q wants %d", len(pose), m.name, m.dof)
	}
	m.pose = append(m.pose[:0], pose...)
	return nil
}

func (m *softModel) Close() {}

// forward runs forward kinematics, filling each body's world position from
// the current pose.
func (m *softModel) forward() {
	type frame struct {
		pos vec3
		rot quat
	}
	frames := make([]frame, len(m.bodies))
	qi := 0
	for i := range m.bodies {
		b := &m.bodies[i]
		parent := frame{rot: quatIdentity}
		if b.parent >= 0 {
			parent = frames[b.parent]
		}
		pos := parent.pos.add(parent.rot.rotate(b.offset))
		rot := parent.rot
		for _, j := range b.joints {
			switch j.kind {
			case jointFree:
				trans := vec3{m.pose[qi], m.pose[qi+1], m.pose[qi+2]}
				orient := quat{m.pose[qi+3], m.pose[qi+4], m.pose[qi+5], m.pose[qi+6]}.normalize()
				pos = pos.add(parent.rot.rotate(trans))
				rot = rot.mul(orient)
				qi += 7
			case jointBall:
				orient := quat{m.pose[qi], m.pose[qi+1], m.pose[qi+2], m.pose[qi+3]}.normalize()
				rot = rot.mul(orient)
				qi += 4
			case jointSlide:
				pos = pos.add(rot.rotate(j.axis.unit().scale(m.pose[qi])))
				qi++
			case jointHinge:
				rot = rot.mul(quatFromAxisAngle(j.axis, m.pose[qi]))
				qi++
			}
		}
		frames[i] = frame{pos: pos, rot: rot}
		b.worldPos = pos
	}
}

func (m *softModel) Render(cam Camera, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid frame size %dx%d", width, height)
	}
	m.forward()

	az := cam.Azimuth * math.Pi / 180
	el := cam.Elevation * math.Pi / 180
	lookat := vec3{cam.LookAt[0], cam.LookAt[1], cam.LookAt[2]}
	eye := lookat.add(vec3{
		cam.Distance * math.Cos(el) * math.Cos(az),
		cam.Distance * math.Cos(el) * math.Sin(az),
		-cam.Distance * math.Sin(el),
	})

	forward := lookat.sub(eye).unit()
	right := forward.cross(vec3{0, 0, 1}).unit()
	if right.norm() == 0 {
		right = vec3{1, 0, 0}
	}
	up := right.cross(forward)
	focal := float64(height) * 1.2

	project := func(p vec3) (x, y float64, ok bool) {
		rel := p.sub(eye)
		z := rel.dot(forward)
		if z <= 1e-6 {
			return 0, 0, false
		}
		x = float64(width)/2 + focal*rel.dot(right)/z
		y = float64(height)/2 - focal*rel.dot(up)/z
		return x, y, true
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.RGBA{R: 0xf4, G: 0xf5, B: 0xf7, A: 0xff})
	dc.Clear()

	drawGroundGrid(dc, project)

	// Links first, joints on top.
	dc.SetColor(color.RGBA{R: 0x35, G: 0x3c, B: 0x47, A: 0xff})
	dc.SetLineWidth(math.Max(1.5, float64(width)/120))
	for _, b := range m.bodies {
		if b.parent < 0 {
			continue
		}
		x1, y1, ok1 := project(m.bodies[b.parent].worldPos)
		x2, y2, ok2 := project(b.worldPos)
		if ok1 && ok2 {
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
	}

	dc.SetColor(color.RGBA{R: 0x2d, G: 0x6c, B: 0xdf, A: 0xff})
	for _, b := range m.bodies {
		x, y, ok := project(b.worldPos)
		if !ok {
			continue
		}
		r := math.Max(2, b.radius*focal/cam.Distance)
		dc.DrawCircle(x, y, r)
		dc.Fill()
	}

	return dc.Image(), nil
}

func drawGroundGrid(dc *gg.Context, project func(vec3) (float64, float64, bool)) {
	dc.SetColor(color.RGBA{R: 0xd8, G: 0xdb, B: 0xe0, A: 0xff})
	dc.SetLineWidth(1)
	const extent = 2
	for i := -extent; i <= extent; i++ {
		a, b := vec3{float64(i), -extent, 0}, vec3{float64(i), extent, 0}
		c, d := vec3{-extent, float64(i), 0}, vec3{extent, float64(i), 0}
		for _, seg := range [][2]vec3{{a, b}, {c, d}} {
			x1, y1, ok1 := project(seg[0])
			x2, y2, ok2 := project(seg[1])
			if ok1 && ok2 {
				dc.DrawLine(x1, y1, x2, y2)
				dc.Stroke()
			}
		}
	}
}
