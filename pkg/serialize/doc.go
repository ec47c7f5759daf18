// Package serialize converts a live render scene into a nested,
// JSON-compatible document that a browser-side renderer can rebuild.
//
// # Overview
//
// Serialization runs in two phases:
//
//  1. Traversal: a [Context] dispatches the root object to the serializer
//     registered for its class name. Each serializer snapshots the object's
//     state into a [Record] and recursively serializes its children through
//     the same Context, naming them with edges. Every result (nil included)
//     is stored in the pass's [Registry] under the object's reference id.
//
//  2. Flattening: [Flatten] walks the root record and inlines every edge
//     target, producing the final [Document].
//
// Serializers never see the flattener and the flattener never sees scene
// objects, so adding a kind touches neither.
//
// # Dispatch
//
// A [Table] maps exact concrete class names ("vtkOpenGLActor",
// "vtkXOpenGLRenderWindow", ...) to serializers. There is no inheritance
// fallback; an unknown class fails the pass with UNREGISTERED_KIND.
// [DefaultTable] returns the standard VTK mapping. Tables are values: clone
// and extend them per caller instead of mutating shared state.
//
//	t := serialize.DefaultTable()
//	_ = t.RegisterKind(serialize.KindActor, "myCustomActor")
//	doc, err := serialize.NewContext(t).Document(window)
//
// # Identity and Sharing
//
// Reference ids are minted per pass from object identity ("1", "2", ... by
// default, see [WithIDFunc]). An object reached twice (for example a dataset
// shared by two mappers) is serialized once and inlined at each reference.
// Cycles in the scene fail with CYCLIC_GRAPH.
//
// # Debugging
//
// [ToDOT] and [RenderSVG] draw the registry as a graph, which shows shared
// records and dropped (nil) objects that the flattened document hides.
package serialize
