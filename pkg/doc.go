// Package pkg provides the libraries behind scenedoc, a serializer that turns
// a rendering scene graph into a vtk.js-style JSON document.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Model - [scene] interfaces a rendering backend implements, with an
//     in-memory backend in [scene/memory] and numeric buffers in [dataarray]
//  2. Serialization - [serialize] walks the graph and builds the document,
//     [sceneio] loads scenes from YAML, JSON or TOML descriptions
//  3. Infrastructure - [pipeline] orchestration, [store] for published
//     documents (file, Redis, MongoDB), [observability] hooks with a
//     Prometheus adapter, [errors] for structured error codes
//
// # Architecture
//
// The typical data flow through scenedoc:
//
//	Scene description (YAML/JSON/TOML)
//	         ↓
//	    [sceneio] package (decode + build the object graph)
//	         ↓
//	    [serialize] package (records per object, then inline into a document)
//	         ↓
//	    [pipeline] package (encode JSON/DOT/SVG, publish to a [store])
//
// # Quick Start
//
// Serialize a scene description file:
//
//	import (
//	    "github.com/matzehuels/scenedoc/pkg/sceneio"
//	    "github.com/matzehuels/scenedoc/pkg/serialize"
//	)
//
//	root, _ := sceneio.ReadSceneFile("pyramid.yaml")
//	doc, _ := serialize.NewContext(serialize.DefaultTable()).Document(root)
//
// A rendering backend serializes its own objects the same way by
// implementing the [scene] interfaces. Unknown classes are added with
// [serialize.Table.Register] or, for subclasses of a built-in kind,
// [serialize.Table.RegisterKind].
//
// # Testing
//
//	go test ./...                          # All tests
//	go test -run Example ./pkg/serialize   # Examples only
//	go test -tags integration ./pkg/store  # Include the MongoDB store
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/scene
// [scene/memory]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/scene/memory
// [dataarray]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/dataarray
// [serialize]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/serialize
// [serialize.Table.Register]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/serialize#Table.Register
// [serialize.Table.RegisterKind]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/serialize#Table.RegisterKind
// [sceneio]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/sceneio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/errors
package pkg
