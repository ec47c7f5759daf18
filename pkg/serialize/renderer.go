package serialize

import (
	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// serializeRenderer emits the active camera, view props and lights of a
// renderer. Backends whose renderers cannot enumerate their contents do not
// implement scene.Renderer and are reported as NOT_SUPPORTED.
func serializeRenderer(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	r, ok := obj.(scene.Renderer)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotSupported, "renderer cannot enumerate its view props").
			WithObject(id, obj.ClassName())
	}

	st := r.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassRenderer)
	rec.Set("background", st.Background)
	rec.Set("background2", st.Background2)
	rec.Set("viewport", st.Viewport)
	rec.Set("twoSidedLighting", st.TwoSidedLighting)
	rec.Set("lightFollowCamera", st.LightFollowCamera)
	rec.Set("layer", st.Layer)
	rec.Set("preserveColorBuffer", st.PreserveColorBuffer)
	rec.Set("preserveDepthBuffer", st.PreserveDepthBuffer)
	rec.Set("nearClippingPlaneTolerance", st.NearClippingPlaneTolerance)
	rec.Set("clippingRangeExpansion", st.ClippingRangeExpansion)
	rec.Set("useShadows", st.UseShadows)
	rec.Set("useDepthPeeling", st.UseDepthPeeling)
	rec.Set("occlusionRatio", st.OcclusionRatio)
	rec.Set("maximumNumberOfPeels", st.MaximumNumberOfPeels)

	cam, err := ctx.Serialize(id, r.ActiveCamera())
	if err != nil {
		return nil, err
	}
	if cam != nil {
		rec.AddEdge("activeCamera", cam.ID)
	}

	for _, p := range r.ViewProps() {
		child, err := ctx.Serialize(id, p)
		if err != nil {
			return nil, err
		}
		if child != nil {
			rec.AddListEdge("addViewProp", child.ID)
		}
	}
	for _, l := range r.Lights() {
		child, err := ctx.Serialize(id, l)
		if err != nil {
			return nil, err
		}
		if child != nil {
			rec.AddListEdge("addLight", child.ID)
		}
	}
	return rec, nil
}

func serializeCamera(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	c, ok := obj.(scene.Camera)
	if !ok {
		return nil, kindMismatch(obj, id, "Camera")
	}

	st := c.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassCamera)
	rec.Set("focalPoint", st.FocalPoint)
	rec.Set("position", st.Position)
	rec.Set("viewUp", st.ViewUp)
	return rec, nil
}

// LightTypeName returns the client-side name of a light type code.
func LightTypeName(code int) string {
	switch code {
	case scene.LightTypeHeadlight:
		return "HeadLight"
	case scene.LightTypeCameraLight:
		return "CameraLight"
	}
	return "SceneLight"
}

func serializeLight(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	l, ok := obj.(scene.Light)
	if !ok {
		return nil, kindMismatch(obj, id, "Light")
	}

	st := l.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassLight)
	rec.Set("switch", st.Switch)
	rec.Set("intensity", st.Intensity)
	rec.Set("color", st.DiffuseColor)
	rec.Set("position", st.Position)
	rec.Set("focalPoint", st.FocalPoint)
	rec.Set("positional", st.Positional)
	rec.Set("exponent", st.Exponent)
	rec.Set("coneAngle", st.ConeAngle)
	rec.Set("attenuationValues", st.AttenuationValues)
	rec.Set("lightType", LightTypeName(st.LightType))
	rec.Set("shadowAttenuation", st.ShadowAttenuation)
	return rec, nil
}
