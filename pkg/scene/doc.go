// Package scene defines the boundary between scenedoc and a live rendering
// engine.
//
// # Overview
//
// A render scene is a mutable object graph: a render window holds renderers,
// renderers hold view props (actors), lights and a camera, and actors point
// at mappers, properties, datasets and lookup tables. The graph is not a
// tree: one dataset or lookup table is commonly shared by several mappers.
//
// Every scene object implements [Object]. On top of that, each object wraps
// exactly one of a closed set of kind interfaces ([Actor], [Mapper],
// [PolyData], [CompositeDataSet], [LookupTable], [ColorTransferFunction],
// [Property], [Renderer], [Camera], [Light], [RenderWindow]). Adding a new
// concrete backend type means implementing one of these interfaces and
// mapping its class name to the kind; the serializer's dispatch logic does
// not change.
//
// # State Snapshots
//
// Kind interfaces expose their readable attributes as value snapshots
// ([ActorState], [PropertyState], ...). Snapshots are copies: reading one
// never mutates the scene, and mutating one never affects the scene.
// [DefaultActorState] and friends return the state of a freshly constructed
// object.
//
// # Optional Capabilities
//
// Some accessors are not available on every backend class. They are modeled
// as small optional interfaces checked at runtime: [HueRanger],
// [Representer] and [DiffuseColorer].
//
// # Backends
//
// The [memory] subpackage is a complete in-memory backend used by scene
// descriptions, tests and examples.
//
// [memory]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/scene/memory
package scene
