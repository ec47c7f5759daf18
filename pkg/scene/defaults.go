package scene

// The Default* functions return the state a freshly constructed VTK object
// reports, so backends and scene descriptions only need to spell out what
// differs.

// DefaultActorState returns a visible, pickable actor at the origin.
func DefaultActorState() ActorState {
	return ActorState{
		Visibility: true,
		Pickable:   true,
		Dragable:   true,
		UseBounds:  true,
		Scale:      [3]float64{1, 1, 1},
	}
}

// DefaultMapperState returns a mapper coloring by the default scalars.
func DefaultMapperState() MapperState {
	return MapperState{
		ScalarRange:               [2]float64{0, 1},
		UseLookupTableScalarRange: false,
		ScalarVisibility:          true,
		ArrayAccessMode:           AccessByID,
		ArrayID:                   -1,
		ColorMode:                 0,
		ScalarMode:                0,
	}
}

// DefaultLookupTableState returns a 256-color rainbow table over [0, 1].
func DefaultLookupTableState() LookupTableState {
	return LookupTableState{
		NumberOfColors:  256,
		Range:           [2]float64{0, 1},
		SaturationRange: [2]float64{1, 1},
		NanColor:        [4]float64{0.5, 0, 0, 1},
		BelowRangeColor: [4]float64{0, 0, 0, 1},
		AboveRangeColor: [4]float64{1, 1, 1, 1},
		Alpha:           1,
		VectorSize:      -1,
		VectorMode:      1,
	}
}

// DefaultTransferFunctionState returns a clamping RGB transfer function.
func DefaultTransferFunctionState() TransferFunctionState {
	return TransferFunctionState{
		Clamping:   true,
		ColorSpace: 1,
		HSVWrap:    true,
		Alpha:      1,
		VectorSize: -1,
		VectorMode: 1,
	}
}

// DefaultPropertyState returns an opaque white Gouraud-shaded surface.
func DefaultPropertyState() PropertyState {
	return PropertyState{
		Color:         [3]float64{1, 1, 1},
		AmbientColor:  [3]float64{1, 1, 1},
		SpecularColor: [3]float64{1, 1, 1},
		EdgeColor:     [3]float64{0, 0, 0},
		Ambient:       0,
		Diffuse:       1,
		Specular:      0,
		SpecularPower: 1,
		Opacity:       1,
		Interpolation: 1,
		PointSize:     1,
		LineWidth:     1,
		Lighting:      true,
	}
}

// DefaultRendererState returns a full-window renderer on a black background.
func DefaultRendererState() RendererState {
	return RendererState{
		Background2:                [3]float64{1, 1, 1},
		Viewport:                   [4]float64{0, 0, 1, 1},
		TwoSidedLighting:           true,
		LightFollowCamera:          true,
		NearClippingPlaneTolerance: 0,
		ClippingRangeExpansion:     0.5,
		OcclusionRatio:             0,
		MaximumNumberOfPeels:       4,
	}
}

// DefaultCameraState returns a camera at (0, 0, 1) looking at the origin.
func DefaultCameraState() CameraState {
	return CameraState{
		Position: [3]float64{0, 0, 1},
		ViewUp:   [3]float64{0, 1, 0},
	}
}

// DefaultLightState returns a white scene light shining toward the origin.
func DefaultLightState() LightState {
	return LightState{
		Switch:            true,
		Intensity:         1,
		DiffuseColor:      [3]float64{1, 1, 1},
		Position:          [3]float64{0, 0, 1},
		Exponent:          1,
		ConeAngle:         30,
		AttenuationValues: [3]float64{1, 0, 0},
		LightType:         LightTypeSceneLight,
		ShadowAttenuation: 1,
	}
}
