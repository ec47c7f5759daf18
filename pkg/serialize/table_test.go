package serialize

import (
	"sort"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

func TestDefaultTableResolves(t *testing.T) {
	tbl := DefaultTable()
	tests := []struct {
		class string
		kind  Kind
	}{
		{"vtkOpenGLActor", KindActor},
		{"vtkPVLODActor", KindActor},
		{"vtkCompositePolyDataMapper2", KindMapper},
		{"vtkLookupTable", KindLookupTable},
		{"vtkPVDiscretizableColorTransferFunction", KindColorTransferFunction},
		{"vtkOpenGLProperty", KindProperty},
		{"vtkPolyData", KindPolyData},
		{"vtkMultiBlockDataSet", KindComposite},
		{"vtkXOpenGLRenderWindow", KindRenderWindow},
		{"vtkExternalOpenGLRenderWindow", KindRenderWindow},
		{"vtkOpenGLRenderer", KindRenderer},
		{"vtkOpenGLCamera", KindCamera},
		{"vtkPVLight", KindLight},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			if _, ok := tbl.Resolve(tt.class); !ok {
				t.Fatalf("Resolve(%q) not found", tt.class)
			}
			if got, _ := tbl.KindOf(tt.class); got != tt.kind {
				t.Errorf("KindOf(%q) = %v, want %v", tt.class, got, tt.kind)
			}
		})
	}
}

func TestTableExactMatchOnly(t *testing.T) {
	tbl := DefaultTable()
	for _, class := range []string{"vtkOpenGLActorSubclass", "vtkopenglactor", ""} {
		if _, ok := tbl.Resolve(class); ok {
			t.Errorf("Resolve(%q) should fail", class)
		}
	}
}

func TestTableRegisterReplaces(t *testing.T) {
	tbl := DefaultTable()
	called := false
	tbl.Register("vtkOpenGLCamera", func(parent string, obj scene.Object, ctx *Context) (*Record, error) {
		called = true
		return NewRecord(ctx.RefID(obj), parent, obj.ClassName(), "custom"), nil
	})

	fn, _ := tbl.Resolve("vtkOpenGLCamera")
	if _, err := fn("", &opaqueObject{class: "vtkOpenGLCamera"}, NewContext(tbl)); err != nil {
		t.Fatalf("serializer: %v", err)
	}
	if !called {
		t.Error("replacement serializer was not used")
	}
	if k, _ := tbl.KindOf("vtkOpenGLCamera"); k != KindCustom {
		t.Errorf("KindOf = %v, want %v", k, KindCustom)
	}
}

func TestTableRegisterKindUnknown(t *testing.T) {
	err := NewTable().RegisterKind(Kind("teapot"), "vtkTeapot")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestTableCloneIsIndependent(t *testing.T) {
	base := DefaultTable()
	clone := base.Clone()
	if err := clone.RegisterKind(KindActor, "myActor"); err != nil {
		t.Fatal(err)
	}

	if _, ok := base.Resolve("myActor"); ok {
		t.Error("registering on a clone changed the original")
	}
	if _, ok := clone.Resolve("myActor"); !ok {
		t.Error("clone lost its registration")
	}
	if len(clone.Classes()) != len(base.Classes())+1 {
		t.Errorf("clone has %d classes, base %d", len(clone.Classes()), len(base.Classes()))
	}
}

func TestTableClassesSorted(t *testing.T) {
	classes := DefaultTable().Classes()
	if !sort.StringsAreSorted(classes) {
		t.Errorf("Classes() not sorted: %v", classes)
	}
	if len(classes) != 31 {
		t.Errorf("len(Classes()) = %d, want 31", len(classes))
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 11 {
		t.Errorf("len(Kinds()) = %d, want 11", len(kinds))
	}
	for _, k := range kinds {
		if _, ok := defaultClasses[k]; !ok {
			t.Errorf("kind %s has no default classes", k)
		}
	}
}
