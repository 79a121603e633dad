package mapping

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/fogtopo/internal/appgraph"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/matcher"
	"github.com/specialistvlad/fogtopo/internal/testutil"
	"github.com/specialistvlad/fogtopo/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, areas, bins int) (*appgraph.Application, *topology.Topology) {
	t.Helper()
	topo := testutil.Tree(t, areas, bins)
	b := appgraph.New("swms")
	for _, m := range []string{"master-module", "waste-info-module", "user_interface"} {
		require.NoError(t, b.AddModule(m, 10))
	}
	app, err := b.Build(testutil.Context(t), topo)
	require.NoError(t, err)
	return app, topo
}

func TestFinalize_PrefixExpandsOverLeaves(t *testing.T) {
	app, topo := fixture(t, 5, 5)

	table, err := New().
		Assign("waste-info-module", "prefix:b-").
		Assign("user_interface", "cloud").
		Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)

	devices := table.DevicesFor("waste-info-module")
	assert.Len(t, devices, 25)
	for _, d := range devices {
		assert.True(t, strings.HasPrefix(d, "b-"), d)
	}
	assert.Equal(t, "b-0-0", devices[0])
	assert.Equal(t, "b-4-4", devices[24])
	assert.Equal(t, []string{"cloud"}, table.DevicesFor("user_interface"))
	assert.Equal(t, 26, table.Len())
	assert.Equal(t, []string{"user_interface"}, table.ModulesOn("cloud"))
}

func TestFinalize_DeviceIDs(t *testing.T) {
	app, topo := fixture(t, 1, 2)
	table, err := New().Assign("master-module", "proxy-server").Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)

	proxy, ok := topo.NodeByName("proxy-server")
	require.True(t, ok)
	assert.Equal(t, []Assignment{{Module: "master-module", Device: "proxy-server", DeviceID: proxy.ID}}, table.Assignments())
}

func TestFinalize_Root(t *testing.T) {
	app, topo := fixture(t, 2, 2)
	table, err := New().AssignRoot("master-module").Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)
	assert.Equal(t, []string{topo.Root().Name}, table.DevicesFor("master-module"))
}

func TestFinalize_DeduplicatesPairs(t *testing.T) {
	app, topo := fixture(t, 1, 3)
	table, err := New().
		Assign("waste-info-module", "prefix:b-").
		Assign("waste-info-module", "b-0-1").
		Assign("waste-info-module", "b-0-*").
		AssignRoot("user_interface").
		Assign("user_interface", "cloud").
		Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)

	assert.Equal(t, []string{"b-0-0", "b-0-1", "b-0-2"}, table.DevicesFor("waste-info-module"))
	assert.Equal(t, []string{"cloud"}, table.DevicesFor("user_interface"))
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, map[string][]string{
		"waste-info-module": {"b-0-0", "b-0-1", "b-0-2"},
		"user_interface":    {"cloud"},
	}, table.ByModule())
}

func TestFinalize_PatternMayMatchNothing(t *testing.T) {
	app, topo := fixture(t, 1, 1)
	table, err := New().Assign("waste-info-module", "prefix:zz").Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestFinalize_Matchers(t *testing.T) {
	app, topo := fixture(t, 3, 2)

	re, err := matcher.NewRegexp(`^b-[12]-1$`)
	require.NoError(t, err)
	areaOnly := matcher.Func{Desc: "areas", Fn: func(name string) bool { return strings.HasPrefix(name, "a-") }}

	table, err := New().
		AssignPattern("waste-info-module", re).
		AssignPattern("master-module", areaOnly).
		Finalize(testutil.Context(t), app, topo)
	require.NoError(t, err)

	assert.Equal(t, []string{"b-1-1", "b-2-1"}, table.DevicesFor("waste-info-module"))
	assert.Equal(t, []string{"a-0", "a-1", "a-2"}, table.DevicesFor("master-module"))
}

func TestFinalize_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		resolver  func() *Resolver
		invariant string
		entity    string
	}{
		{
			name:      "missing device",
			resolver:  func() *Resolver { return New().Assign("user_interface", "moon") },
			invariant: fogerr.UndeclaredDevice,
			entity:    "moon",
		},
		{
			name:      "missing module",
			resolver:  func() *Resolver { return New().Assign("ghost-module", "cloud") },
			invariant: fogerr.UndeclaredModule,
			entity:    "ghost-module",
		},
		{
			name:      "missing module on root",
			resolver:  func() *Resolver { return New().AssignRoot("ghost-module") },
			invariant: fogerr.UndeclaredModule,
			entity:    "ghost-module",
		},
		{
			name: "malformed selector",
			resolver: func() *Resolver {
				return New().Assign("waste-info-module", "regexp:[").Assign("user_interface", "cloud")
			},
			invariant: fogerr.InvalidPattern,
			entity:    "waste-info-module",
		},
		{
			name:      "nil selector",
			resolver:  func() *Resolver { return New().AssignPattern("waste-info-module", nil) },
			invariant: fogerr.InvalidPattern,
			entity:    "waste-info-module",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, topo := fixture(t, 1, 1)
			table, err := tc.resolver().Finalize(testutil.Context(t), app, topo)
			require.Error(t, err)
			assert.Nil(t, table)

			fe, ok := fogerr.As(err)
			require.True(t, ok)
			assert.Equal(t, fogerr.Mapping, fe.Kind)
			assert.Equal(t, tc.invariant, fe.Invariant)
			assert.Equal(t, tc.entity, fe.Entity)
		})
	}
}

func TestFinalize_WithoutInputs(t *testing.T) {
	app, topo := fixture(t, 1, 1)
	r := New().Assign("user_interface", "cloud")

	_, err := r.Finalize(testutil.Context(t), app, nil)
	assert.True(t, fogerr.IsKind(err, fogerr.Config), "got %v", err)

	_, err = r.Finalize(testutil.Context(t), nil, topo)
	assert.True(t, fogerr.IsKind(err, fogerr.Config), "got %v", err)
}

func TestConstraints(t *testing.T) {
	r := New().Assign("a", "prefix:b-").AssignRoot("c")
	cs := r.Constraints()
	require.Len(t, cs, 2)
	assert.Equal(t, "prefix:b-", cs[0].String())
	assert.Equal(t, "root", cs[1].String())
	assert.Equal(t, "c", cs[1].Module)
}

func ExampleResolver() {
	fmt.Println(New().Assign("waste-info-module", "prefix:b-").Constraints()[0])
	// Output: prefix:b-
}
