package yamlstore

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncode_DocumentShape(t *testing.T) {
	m := sysml.NewModel("M")
	structure, err := m.CreatePackage("Structure")
	require.NoError(t, err)
	starship, err := structure.CreateBlock("Starship")
	require.NoError(t, err)
	nacelle, err := m.NewBlock("Nacelle", sysml.WithMultiplicity(2))
	require.NoError(t, err)
	require.NoError(t, starship.AddPart("nacelle", nacelle))
	r, err := m.CreateRequirement("R", "t")
	require.NoError(t, err)
	_, err = m.CreateDependency(sysml.KindSatisfy, starship, r)
	require.NoError(t, err)

	doc, err := Encode(m)
	require.NoError(t, err)

	want := &Document{
		Version: 1,
		Model: Node{Kind: "model", Anchor: 1, Name: "M", Elements: []Entry{
			{Key: "Structure", Node: Node{Kind: "package", Anchor: 2, Name: "Structure", Elements: []Entry{
				{Key: "Starship", Node: Node{Kind: "block", Anchor: 3, Name: "Starship", Multiplicity: 1, Parts: []Entry{
					{Key: "nacelle", Node: Node{Kind: "block", Anchor: 4, Name: "Nacelle", Multiplicity: 2}},
				}}},
			}}},
			{Key: "R", Node: Node{Kind: "requirement", Anchor: 5, Name: "R", Identifier: "ID001", Text: "t"}},
			{Key: "satisfy1", Node: Node{Kind: "satisfy", Anchor: 6, Name: "satisfy1", Client: 3, Supplier: 5}},
		}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

// twoPackageModel has two packages and three blocks, one of them shared.
func twoPackageModel(t *testing.T) *sysml.Model {
	t.Helper()
	m := sysml.NewModel("USS Enterprise")
	structure, err := m.CreatePackage("Structure")
	require.NoError(t, err)
	reqs, err := m.CreatePackage("Requirements")
	require.NoError(t, err)

	starship, err := structure.CreateBlock("Starship")
	require.NoError(t, err)
	nacelle, err := structure.CreateBlock("Nacelle", sysml.WithMultiplicity(2))
	require.NoError(t, err)
	require.NoError(t, starship.AddPart("nacelle", nacelle))
	shuttle, err := structure.CreateBlock("Shuttle")
	require.NoError(t, err)
	require.NoError(t, starship.AddReference("bay", shuttle))

	mass, err := m.NewValueType("mass", 1200.5, "meter")
	require.NoError(t, err)
	require.NoError(t, starship.AddValue("", mass))
	thrust, err := m.NewConstraintBlock("Thrust", "F = m * a")
	require.NoError(t, err)
	require.NoError(t, starship.AddConstraint("", thrust))

	top, err := reqs.CreateRequirement("Top-level", "Travel between stars.")
	require.NoError(t, err)
	fn, err := reqs.CreateRequirement("Functional", "Reach warp 9.", sysml.WithIdentifier("WARP-9"))
	require.NoError(t, err)
	_, err = reqs.CreateDependency(sysml.KindDeriveReqt, fn, top)
	require.NoError(t, err)
	_, err = reqs.CreateDependency(sysml.KindSatisfy, starship, fn)
	require.NoError(t, err)
	_, err = reqs.CreateDependency(sysml.KindVerify, shuttle, fn, sysml.Named("shuttle test"))
	require.NoError(t, err)
	return m
}

func TestRoundTrip(t *testing.T) {
	m := twoPackageModel(t)

	first, err := Serialize(m)
	require.NoError(t, err)
	loaded, err := Deserialize(first)
	require.NoError(t, err)
	second, err := Serialize(loaded)
	require.NoError(t, err)

	var a, b Document
	require.NoError(t, yaml.Unmarshal(first, &a))
	require.NoError(t, yaml.Unmarshal(second, &b))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%s", diff)
	}
	assert.Equal(t, string(first), string(second))

	assert.Equal(t, "USS Enterprise", loaded.Name())
	assert.NotEqual(t, m.ID(), loaded.ID(), "loaded elements get fresh identities")

	nacelle, err := loaded.Resolve("structure.starship.nacelle")
	require.NoError(t, err)
	assert.Equal(t, 2, nacelle.(*sysml.Block).Multiplicity())

	viaRef, err := loaded.Resolve("structure.starship.bay")
	require.NoError(t, err)
	owned, err := loaded.Resolve("structure.shuttle")
	require.NoError(t, err)
	assert.Same(t, owned, viaRef, "a reference and its owner share one element")

	mass, err := loaded.Resolve("structure.starship.mass")
	require.NoError(t, err)
	q := mass.(*sysml.ValueType).Quantity()
	assert.Equal(t, 1200.5, q.Magnitude())
	assert.Equal(t, "meter", q.Unit())

	fn, err := loaded.Resolve("requirements.functional")
	require.NoError(t, err)
	assert.Equal(t, "WARP-9", fn.(*sysml.Requirement).Identifier())

	report := loaded.IsValid()
	require.Len(t, report.Unmet, 1)
	assert.Equal(t, "Top-level", report.Unmet[0].Requirement.Name())
}

func TestRoundTrip_LargeMultiplicity(t *testing.T) {
	for _, n := range []int{1 << 31, 1<<53 + 1, math.MaxInt} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			m := sysml.NewModel("M")
			_, err := m.CreateBlock("Swarm", sysml.WithMultiplicity(n))
			require.NoError(t, err)

			data, err := Serialize(m)
			require.NoError(t, err)
			assert.Contains(t, string(data), "multiplicity: "+strconv.Itoa(n)+"\n")

			loaded, err := Deserialize(data)
			require.NoError(t, err)
			swarm, err := loaded.Get("Swarm")
			require.NoError(t, err)
			assert.Equal(t, n, swarm.(*sysml.Block).Multiplicity())
		})
	}
}

func TestDeserialize_AllocatorContinuesAfterLoadedNames(t *testing.T) {
	m := sysml.NewModel("M")
	_, err := m.CreateBlock("")
	require.NoError(t, err)
	_, err = m.CreateRequirement("", "text")
	require.NoError(t, err)

	data, err := Serialize(m)
	require.NoError(t, err)
	loaded, err := Deserialize(data)
	require.NoError(t, err)

	b, err := loaded.CreateBlock("")
	require.NoError(t, err)
	assert.Equal(t, "block2", b.Name())
	r, err := loaded.CreateRequirement("", "text")
	require.NoError(t, err)
	assert.Equal(t, "ID002", r.Identifier())
}

func TestDeserialize_RejectsNonModels(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"bare string", `"just a string"`, sysml.ErrInvalidArgumentType},
		{"sequence", "- a\n- b\n", sysml.ErrInvalidArgumentType},
		{"empty", "", sysml.ErrInvalidArgumentType},
		{"malformed", "version: [", sysml.ErrInvalidArgumentType},
		{"wrong version", "version: 7\nmodel: {kind: model}\n", sysml.ErrInvalidArgumentType},
		{"root is a package", "version: 1\nmodel: {kind: package, name: P}\n", sysml.ErrInvalidArgumentType},
		{"unknown kind", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: usecase, anchor: 2}\n", sysml.ErrInvalidArgumentType},
		{"nested model", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: model, anchor: 2}\n", sysml.ErrInvalidElementType},
		{"value in package", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: valueType, anchor: 2}\n", sysml.ErrInvalidElementType},
		{"requirement as part", "version: 1\nmodel:\n  kind: model\n  elements:\n    - key: b\n      kind: block\n      anchor: 2\n      parts:\n        - {key: r, kind: requirement, anchor: 3}\n", sysml.ErrInvalidArgumentType},
		{"duplicate key", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2}\n    - {key: x, kind: block, anchor: 3}\n", sysml.ErrDuplicateKey},
		{"fractional multiplicity", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2, multiplicity: 2.5}\n", sysml.ErrInvalidMultiplicity},
		{"whole float multiplicity", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2, multiplicity: 2.0}\n", sysml.ErrInvalidMultiplicity},
		{"quoted multiplicity", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2, multiplicity: \"2\"}\n", sysml.ErrInvalidMultiplicity},
		{"overflowing multiplicity", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2, multiplicity: 99999999999999999999}\n", sysml.ErrInvalidMultiplicity},
		{"negative multiplicity", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, kind: block, anchor: 2, multiplicity: -3}\n", sysml.ErrInvalidMultiplicity},
		{"dangling ref", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: x, ref: 9}\n", sysml.ErrNotFound},
		{"dangling supplier", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: b, kind: block, anchor: 2}\n    - {key: s, kind: satisfy, anchor: 3, client: 2, supplier: 9}\n", sysml.ErrNotFound},
		{"satisfy of a block", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: b, kind: block, anchor: 2}\n    - {key: s, kind: satisfy, anchor: 3, client: 2, supplier: 2}\n", sysml.ErrInvalidEndpoint},
		{"self dependency", "version: 1\nmodel:\n  kind: model\n  elements:\n    - {key: d, kind: dependency, anchor: 2, client: 2, supplier: 1}\n", sysml.ErrInvalidEndpoint},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Deserialize([]byte(tc.input))
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, m)
		})
	}
}

func TestDeserialize_ForwardEndpoint(t *testing.T) {
	input := `
version: 1
model:
  kind: model
  anchor: 1
  name: M
  elements:
    - {key: s, kind: satisfy, anchor: 2, client: 3, supplier: 4}
    - {key: B, kind: block, anchor: 3, name: B}
    - {key: R, kind: requirement, anchor: 4, name: R, text: t}
    - {key: d, kind: dependency, anchor: 5, client: 1, supplier: 2}
`
	m, err := Deserialize([]byte(input))
	require.NoError(t, err)

	s, err := m.Get("s")
	require.NoError(t, err)
	b, err := m.Get("B")
	require.NoError(t, err)
	assert.Same(t, b, s.(*sysml.Dependency).Client())

	d, err := m.Get("d")
	require.NoError(t, err)
	assert.Same(t, m, d.(*sysml.Dependency).Client())
	assert.Same(t, s, d.(*sysml.Dependency).Supplier())
}

func TestSerialize_UnownedEndpointFails(t *testing.T) {
	m := sysml.NewModel("M")
	r, err := m.CreateRequirement("R", "t")
	require.NoError(t, err)
	loose, err := m.NewBlock("Loose")
	require.NoError(t, err)
	_, err = m.CreateDependency(sysml.KindSatisfy, loose, r)
	require.NoError(t, err)

	_, err = Serialize(m)
	require.ErrorIs(t, err, sysml.ErrNotFound)
}

func TestSerialize_ReferenceOutlivesOwner(t *testing.T) {
	m := sysml.NewModel("M")
	lib, err := m.CreatePackage("Library")
	require.NoError(t, err)
	engine, err := lib.CreateBlock("Engine")
	require.NoError(t, err)
	ship, err := m.CreateBlock("Ship")
	require.NoError(t, err)
	require.NoError(t, ship.AddReference("engine", engine))
	require.NoError(t, lib.Remove("Engine"))

	data, err := Serialize(m)
	require.NoError(t, err)
	loaded, err := Deserialize(data)
	require.NoError(t, err)

	got, err := loaded.Resolve("ship.engine")
	require.NoError(t, err)
	assert.Equal(t, "Engine", got.Name())
}

func TestSerialize_NilModel(t *testing.T) {
	_, err := Serialize(nil)
	require.ErrorIs(t, err, sysml.ErrInvalidArgumentType)
}

func TestSaveAndLoadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "enterprise.yaml")
	m := twoPackageModel(t)

	require.NoError(t, SaveFile(ctx, path, m))
	loaded, err := LoadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, m.Elements().Keys(), loaded.Elements().Keys())

	_, err = LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
