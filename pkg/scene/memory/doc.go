// Package memory is an in-memory scene backend.
//
// Every type implements one kind interface of package scene and embeds the
// matching state snapshot, so scenes can be assembled with plain struct
// literals or the New* constructors, which start from VTK defaults:
//
//	cam := memory.NewCamera()
//	ren := memory.NewRenderer(cam)
//	ren.AddViewProp(memory.NewActor(mapper, memory.NewProperty()))
//	win := memory.NewRenderWindow(ren)
//
// An empty Class field reports the OpenGL class name of the kind (for
// example "vtkOpenGLActor"); set it to exercise other dispatch entries.
//
// [MergeBlocks] collapses a multi-block dataset into one PolyData and is the
// default composite merger of the serializer.
package memory
