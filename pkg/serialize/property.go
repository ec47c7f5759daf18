package serialize

import "github.com/matzehuels/scenedoc/pkg/scene"

var white = [3]float64{1, 1, 1}

// displayColor picks the color a client should draw with: the plain color in
// wireframe mode, otherwise the diffuse color (white when unavailable).
func displayColor(obj scene.Object, rep scene.Representation, st scene.PropertyState) [3]float64 {
	if rep == scene.RepresentationWireframe {
		return st.Color
	}
	if d, ok := obj.(scene.DiffuseColorer); ok {
		return d.DiffuseColor()
	}
	return white
}

func serializeProperty(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	p, ok := obj.(scene.Property)
	if !ok {
		return nil, kindMismatch(obj, id, "Property")
	}

	rep := scene.RepresentationSurface
	if r, ok := obj.(scene.Representer); ok {
		rep = r.Representation()
	}

	st := p.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassProperty)
	rec.Set("representation", int(rep))
	rec.Set("diffuseColor", displayColor(obj, rep, st))
	rec.Set("color", st.Color)
	rec.Set("ambientColor", st.AmbientColor)
	rec.Set("specularColor", st.SpecularColor)
	rec.Set("edgeColor", st.EdgeColor)
	rec.Set("ambient", st.Ambient)
	rec.Set("diffuse", st.Diffuse)
	rec.Set("specular", st.Specular)
	rec.Set("specularPower", st.SpecularPower)
	rec.Set("opacity", st.Opacity)
	rec.Set("interpolation", st.Interpolation)
	rec.Set("edgeVisibility", st.EdgeVisibility)
	rec.Set("backfaceCulling", st.BackfaceCulling)
	rec.Set("frontfaceCulling", st.FrontfaceCulling)
	rec.Set("pointSize", st.PointSize)
	rec.Set("lineWidth", st.LineWidth)
	rec.Set("lighting", st.Lighting)
	return rec, nil
}
