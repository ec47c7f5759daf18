package sceneio

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/scene/memory"
)

// Build constructs the scene and returns its root object.
func (d *Description) Build() (scene.Object, error) {
	var roots []string
	if d.RenderWindow != nil {
		roots = append(roots, "renderWindow")
	}
	if d.Renderer != nil {
		roots = append(roots, "renderer")
	}
	if d.Actor != nil {
		roots = append(roots, "actor")
	}
	switch len(roots) {
	case 0:
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no root (want renderWindow, renderer or actor)")
	case 1:
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has several roots: %s", strings.Join(roots, ", "))
	}

	b := &builder{
		desc:       d,
		datasets:   map[string]scene.Object{},
		colormaps:  map[string]scene.Object{},
		properties: map[string]*memory.Property{},
		cameras:    map[string]*memory.Camera{},
	}
	if err := b.checkNames(); err != nil {
		return nil, err
	}

	switch {
	case d.RenderWindow != nil:
		return b.window(d.RenderWindow)
	case d.Renderer != nil:
		return b.renderer(d.Renderer)
	default:
		return b.actor(d.Actor)
	}
}

// builder resolves named references, creating each shared object once.
type builder struct {
	desc       *Description
	datasets   map[string]scene.Object
	colormaps  map[string]scene.Object
	properties map[string]*memory.Property
	cameras    map[string]*memory.Camera
}

func (b *builder) checkNames() error {
	for name := range b.desc.LookupTables {
		if _, ok := b.desc.TransferFunctions[name]; ok {
			return errors.New(errors.ErrCodeInvalidScene, "%q is both a lookup table and a transfer function", name)
		}
	}
	return nil
}

func (b *builder) window(w *WindowDesc) (*memory.RenderWindow, error) {
	win := memory.NewRenderWindow()
	win.Class = w.Class
	if w.Layers > 0 {
		win.Layers = w.Layers
	}
	for i := range w.Renderers {
		r, err := b.renderer(&w.Renderers[i])
		if err != nil {
			return nil, err
		}
		win.AddRenderer(r)
	}
	return win, nil
}

func (b *builder) renderer(r *RendererDesc) (*memory.Renderer, error) {
	var camera *memory.Camera
	if r.Camera == "" {
		camera = memory.NewCamera()
	} else {
		c, err := b.camera(r.Camera)
		if err != nil {
			return nil, err
		}
		camera = c
	}

	ren := memory.NewRenderer(camera)
	ren.Class = r.Class
	ren.Layer = r.Layer
	if err := setVec(&ren.Background, r.Background, "renderer background"); err != nil {
		return nil, err
	}
	if err := setVec4(&ren.Viewport, r.Viewport, "renderer viewport"); err != nil {
		return nil, err
	}
	if r.TwoSidedLighting != nil {
		ren.TwoSidedLighting = *r.TwoSidedLighting
	}

	for i := range r.Actors {
		a, err := b.actor(&r.Actors[i])
		if err != nil {
			return nil, err
		}
		ren.AddViewProp(a)
	}
	for i := range r.Lights {
		l, err := light(&r.Lights[i])
		if err != nil {
			return nil, err
		}
		ren.AddLight(l)
	}
	return ren, nil
}

func (b *builder) actor(a *ActorDesc) (*memory.Actor, error) {
	act := memory.NewActor(nil, nil)
	act.Class = a.Class
	if a.Visible != nil {
		act.Visibility = *a.Visible
	}
	if a.Pickable != nil {
		act.Pickable = *a.Pickable
	}
	if err := setVec(&act.Origin, a.Origin, "actor origin"); err != nil {
		return nil, err
	}
	if err := setVec(&act.Position, a.Position, "actor position"); err != nil {
		return nil, err
	}
	if err := setVec(&act.Scale, a.Scale, "actor scale"); err != nil {
		return nil, err
	}

	if a.Property == "" {
		act.PropertyNode = memory.NewProperty()
	} else {
		p, err := b.property(a.Property)
		if err != nil {
			return nil, err
		}
		act.PropertyNode = p
	}

	if a.Mapper != nil {
		m, err := b.mapper(a.Mapper)
		if err != nil {
			return nil, err
		}
		act.MapperNode = m
	}
	return act, nil
}

func (b *builder) mapper(m *MapperDesc) (*memory.Mapper, error) {
	mp := memory.NewMapper(nil, nil)
	mp.Class = m.Class
	mp.ColorMode = m.ColorMode
	mp.ScalarMode = m.ScalarMode
	if m.ScalarVisibility != nil {
		mp.ScalarVisibility = *m.ScalarVisibility
	}
	if err := setVec2(&mp.ScalarRange, m.ScalarRange, "mapper scalarRange"); err != nil {
		return nil, err
	}
	if m.ColorBy != "" {
		mp.ArrayAccessMode = scene.AccessByName
		mp.ArrayName = m.ColorBy
	}

	if m.Input != "" {
		in, err := b.dataset(m.Input)
		if err != nil {
			return nil, err
		}
		mp.InputNode = in
	}
	if m.LookupTable != "" {
		lut, err := b.colormap(m.LookupTable)
		if err != nil {
			return nil, err
		}
		mp.LookupTableNode = lut
	}
	return mp, nil
}

// dataset registers composite datasets before filling their blocks, so a
// block list may refer back to an enclosing dataset.
func (b *builder) dataset(name string) (scene.Object, error) {
	if obj, ok := b.datasets[name]; ok {
		return obj, nil
	}
	d, ok := b.desc.Datasets[name]
	if !ok {
		return nil, unknownRef("dataset", name, b.desc.Datasets)
	}

	if len(d.Blocks) > 0 {
		mb := &memory.MultiBlock{Class: d.Class}
		b.datasets[name] = mb
		for _, block := range d.Blocks {
			obj, err := b.dataset(block)
			if err != nil {
				return nil, err
			}
			mb.BlockNodes = append(mb.BlockNodes, obj)
		}
		return mb, nil
	}

	pd, err := polyData(name, &d)
	if err != nil {
		return nil, err
	}
	b.datasets[name] = pd
	return pd, nil
}

func (b *builder) colormap(name string) (scene.Object, error) {
	if obj, ok := b.colormaps[name]; ok {
		return obj, nil
	}

	if l, ok := b.desc.LookupTables[name]; ok {
		lut := memory.NewLookupTable()
		lut.Class = l.Class
		if l.NumberOfColors > 0 {
			lut.NumberOfColors = l.NumberOfColors
		}
		if l.Alpha != nil {
			lut.Alpha = *l.Alpha
		}
		for _, v := range []struct {
			dst  *[2]float64
			src  []float64
			what string
		}{
			{&lut.Range, l.Range, "range"},
			{&lut.Hue, l.HueRange, "hueRange"},
			{&lut.SaturationRange, l.SaturationRange, "saturationRange"},
		} {
			if err := setVec2(v.dst, v.src, "lookup table "+name+" "+v.what); err != nil {
				return nil, err
			}
		}
		b.colormaps[name] = lut
		return lut, nil
	}

	if f, ok := b.desc.TransferFunctions[name]; ok {
		tf := memory.NewTransferFunction()
		tf.Class = f.Class
		if f.Clamping != nil {
			tf.Clamping = *f.Clamping
		}
		for i, p := range f.Points {
			if len(p) != 4 {
				return nil, errors.New(errors.ErrCodeInvalidScene,
					"transfer function %s point %d: want x, r, g, b, got %d values", name, i, len(p))
			}
			tf.AddRGBPoint(p[0], p[1], p[2], p[3])
		}
		b.colormaps[name] = tf
		return tf, nil
	}

	names := map[string]struct{}{}
	for n := range b.desc.LookupTables {
		names[n] = struct{}{}
	}
	for n := range b.desc.TransferFunctions {
		names[n] = struct{}{}
	}
	return nil, unknownRef("lookup table", name, names)
}

func (b *builder) property(name string) (*memory.Property, error) {
	if p, ok := b.properties[name]; ok {
		return p, nil
	}
	d, ok := b.desc.Properties[name]
	if !ok {
		return nil, unknownRef("property", name, b.desc.Properties)
	}

	p := memory.NewProperty()
	p.Class = d.Class
	if d.Representation != "" {
		mode, ok := representations[strings.ToLower(d.Representation)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"property %s: unknown representation %q (want points, wireframe or surface)", name, d.Representation)
		}
		p.Mode = mode
	}
	if err := setVec(&p.Color, d.Color, "property "+name+" color"); err != nil {
		return nil, err
	}
	p.DiffuseRGB = p.Color
	if err := setVec(&p.DiffuseRGB, d.DiffuseColor, "property "+name+" diffuseColor"); err != nil {
		return nil, err
	}
	if d.Opacity != nil {
		p.Opacity = *d.Opacity
	}
	if d.PointSize > 0 {
		p.PointSize = d.PointSize
	}
	if d.LineWidth > 0 {
		p.LineWidth = d.LineWidth
	}
	p.EdgeVisibility = d.EdgeVisibility

	b.properties[name] = p
	return p, nil
}

var representations = map[string]scene.Representation{
	"points":    scene.RepresentationPoints,
	"wireframe": scene.RepresentationWireframe,
	"surface":   scene.RepresentationSurface,
}

func (b *builder) camera(name string) (*memory.Camera, error) {
	if c, ok := b.cameras[name]; ok {
		return c, nil
	}
	d, ok := b.desc.Cameras[name]
	if !ok {
		return nil, unknownRef("camera", name, b.desc.Cameras)
	}

	c := memory.NewCamera()
	c.Class = d.Class
	if err := setVec(&c.Position, d.Position, "camera "+name+" position"); err != nil {
		return nil, err
	}
	if err := setVec(&c.FocalPoint, d.FocalPoint, "camera "+name+" focalPoint"); err != nil {
		return nil, err
	}
	if err := setVec(&c.ViewUp, d.ViewUp, "camera "+name+" viewUp"); err != nil {
		return nil, err
	}
	b.cameras[name] = c
	return c, nil
}

var lightTypes = map[string]int{
	"headlight": scene.LightTypeHeadlight,
	"camera":    scene.LightTypeCameraLight,
	"scene":     scene.LightTypeSceneLight,
}

func light(d *LightDesc) (*memory.Light, error) {
	l := memory.NewLight()
	l.Class = d.Class
	if d.Type != "" {
		t, ok := lightTypes[strings.ToLower(d.Type)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"unknown light type %q (want headlight, camera or scene)", d.Type)
		}
		l.LightType = t
	}
	if d.Intensity != nil {
		l.Intensity = *d.Intensity
	}
	if d.Switch != nil {
		l.Switch = *d.Switch
	}
	l.Positional = d.Positional
	if err := setVec(&l.DiffuseColor, d.Color, "light color"); err != nil {
		return nil, err
	}
	if err := setVec(&l.Position, d.Position, "light position"); err != nil {
		return nil, err
	}
	if err := setVec(&l.FocalPoint, d.FocalPoint, "light focalPoint"); err != nil {
		return nil, err
	}
	return l, nil
}

func polyData(name string, d *DatasetDesc) (*memory.PolyData, error) {
	if len(d.Points)%3 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene,
			"dataset %s: %d point coordinates is not a multiple of 3", name, len(d.Points))
	}
	npts := len(d.Points) / 3

	pointType := dataarray.TypeFloat
	if d.PointType != "" {
		t, ok := dataarray.ParseDataType(d.PointType)
		if !ok || (t != dataarray.TypeFloat && t != dataarray.TypeDouble) {
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"dataset %s: point type must be float or double, got %q", name, d.PointType)
		}
		pointType = t
	}

	pd := &memory.PolyData{Class: d.Class}
	if npts > 0 {
		pd.Coords = dataarray.New("Points", pointType, 3, d.Points...)
	}

	var ncells int
	for _, c := range []struct {
		dst   *dataarray.DataArray
		cells [][]int
		what  string
	}{
		{&pd.Verts, d.Verts, "verts"},
		{&pd.Lines, d.Lines, "lines"},
		{&pd.Polys, d.Polys, "polys"},
		{&pd.Strips, d.Strips, "strips"},
	} {
		arr, err := cellArray(name, c.what, c.cells, npts)
		if err != nil {
			return nil, err
		}
		if arr != nil {
			*c.dst = arr
		}
		ncells += len(c.cells)
	}

	var err error
	if pd.Point, err = attributes(name, "pointData", d.PointData, npts); err != nil {
		return nil, err
	}
	if pd.Cell, err = attributes(name, "cellData", d.CellData, ncells); err != nil {
		return nil, err
	}
	if pd.Field, err = attributes(name, "fieldData", d.FieldData, -1); err != nil {
		return nil, err
	}
	return pd, nil
}

// cellArray lays cells out as n, id0 .. idn-1 per cell.
func cellArray(name, what string, cells [][]int, npts int) (dataarray.DataArray, error) {
	if len(cells) == 0 {
		return nil, nil
	}
	var values []float64
	for i, cell := range cells {
		if len(cell) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "dataset %s: %s cell %d is empty", name, what, i)
		}
		values = append(values, float64(len(cell)))
		for _, id := range cell {
			if id < 0 || id >= npts {
				return nil, errors.New(errors.ErrCodeInvalidScene,
					"dataset %s: %s cell %d references point %d of %d", name, what, i, id, npts)
			}
			values = append(values, float64(id))
		}
	}
	return dataarray.New("", dataarray.TypeIDType, 1, values...), nil
}

// attributes builds an attribute set. tuples is the required tuple count, or
// -1 when arrays may have any length.
func attributes(name, where string, arrays []ArrayDesc, tuples int) (*scene.Attributes, error) {
	if len(arrays) == 0 {
		return nil, nil
	}
	attrs := &scene.Attributes{}
	for i, a := range arrays {
		typ := dataarray.TypeFloat
		if a.Type != "" {
			t, ok := dataarray.ParseDataType(a.Type)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidScene, "dataset %s: %s array %q has unknown type %q", name, where, a.Name, a.Type)
			}
			typ = t
		}
		comps := a.Components
		if comps <= 0 {
			comps = 1
		}
		if len(a.Values)%comps != 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"dataset %s: %s array %q has %d values for %d components", name, where, a.Name, len(a.Values), comps)
		}
		if tuples >= 0 && len(a.Values)/comps != tuples {
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"dataset %s: %s array %q has %d tuples, want %d", name, where, a.Name, len(a.Values)/comps, tuples)
		}
		if a.Name == "" {
			a.Name = where + "_" + strconv.Itoa(i)
		}

		arr := dataarray.New(a.Name, typ, comps, a.Values...)
		attrs.Arrays = append(attrs.Arrays, arr)
		switch strings.ToLower(a.Active) {
		case "":
		case "scalars":
			attrs.Scalars = arr
		case "normals":
			attrs.Normals = arr
		case "tcoords":
			attrs.TCoords = arr
		default:
			return nil, errors.New(errors.ErrCodeInvalidScene,
				"dataset %s: %s array %q: unknown active role %q (want scalars, normals or tcoords)", name, where, a.Name, a.Active)
		}
	}
	return attrs, nil
}

func setVec(dst *[3]float64, src []float64, what string) error {
	if src == nil {
		return nil
	}
	if len(src) != 3 {
		return errors.New(errors.ErrCodeInvalidScene, "%s: want 3 values, got %d", what, len(src))
	}
	copy(dst[:], src)
	return nil
}

func setVec2(dst *[2]float64, src []float64, what string) error {
	if src == nil {
		return nil
	}
	if len(src) != 2 {
		return errors.New(errors.ErrCodeInvalidScene, "%s: want 2 values, got %d", what, len(src))
	}
	copy(dst[:], src)
	return nil
}

func setVec4(dst *[4]float64, src []float64, what string) error {
	if src == nil {
		return nil
	}
	if len(src) != 4 {
		return errors.New(errors.ErrCodeInvalidScene, "%s: want 4 values, got %d", what, len(src))
	}
	copy(dst[:], src)
	return nil
}

func unknownRef[V any](what, name string, known map[string]V) error {
	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "unknown %s %q", what, name)
	}
	return errors.New(errors.ErrCodeInvalidScene, "unknown %s %q (have %s)", what, name, strings.Join(names, ", "))
}
