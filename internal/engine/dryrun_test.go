package engine

import (
	"context"
	"testing"

	"github.com/specialistvlad/fogtopo/internal/idalloc"
	"github.com/specialistvlad/fogtopo/internal/scenario"
	"github.com/specialistvlad/fogtopo/internal/testutil"
	"github.com/specialistvlad/fogtopo/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deployment(t *testing.T, cloud bool) *Deployment {
	t.Helper()
	ctx := testutil.Context(t)
	v := scenario.Classic
	topo, err := topology.Generate(ctx, v.Schedule(2, 2), idalloc.New())
	require.NoError(t, err)
	app, err := v.Application(ctx, topo)
	require.NoError(t, err)
	table, err := v.Mapping(ctx, app, topo, cloud)
	require.NoError(t, err)

	placement := Edgewards
	if cloud {
		placement = MappingOnly
	}
	return &Deployment{Topology: topo, Application: app, Mapping: table, Placement: placement}
}

func TestDryRun_Submit(t *testing.T) {
	ctx, logs := testutil.LogContext(t)
	e := NewDryRun()

	d := deployment(t, false)
	require.NoError(t, e.Submit(ctx, d))

	assert.Same(t, d, e.Last())
	assert.Equal(t, 1, e.Submitted())
	assert.Contains(t, logs.String(), "Deployment accepted.")
	assert.Contains(t, logs.String(), "placement=edgewards")
	assert.Contains(t, logs.String(), "master-module")
}

func TestDeployment_Summarize(t *testing.T) {
	s := deployment(t, false).Summarize()
	assert.Equal(t, 8, s.Nodes)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 2, 3: 4}, s.NodesByLevel)
	assert.Equal(t, 4, s.Sensors)
	assert.Equal(t, 3, s.Modules)
	assert.Equal(t, 4, s.Edges)
	assert.Equal(t, 2, s.Loops)
	assert.Equal(t, 5, s.Assignments)
	assert.Equal(t, []string{scenario.MasterModule}, s.Unpinned)

	s = deployment(t, true).Summarize()
	assert.Equal(t, 6, s.Assignments)
	assert.Empty(t, s.Unpinned)
}

func TestDeployment_Check(t *testing.T) {
	good := deployment(t, true)
	require.NoError(t, good.Check())

	testCases := []struct {
		name   string
		mutate func(d *Deployment)
	}{
		{"nil topology", func(d *Deployment) { d.Topology = nil }},
		{"nil mapping", func(d *Deployment) { d.Mapping = nil }},
		{"unknown placement", func(d *Deployment) { d.Placement = "random" }},
		{"mapping from another topology", func(d *Deployment) {
			other, err := topology.Generate(testutil.Context(t), scenario.Classic.Schedule(1, 1), idalloc.New())
			require.NoError(t, err)
			d.Topology = other
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := *deployment(t, true)
			tc.mutate(&d)
			assert.Error(t, d.Check())
			assert.Error(t, NewDryRun().Submit(testutil.Context(t), &d))
		})
	}
}

func TestDryRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.Context(t))
	cancel()
	e := NewDryRun()
	assert.ErrorIs(t, e.Submit(ctx, deployment(t, false)), context.Canceled)
	assert.Nil(t, e.Last())
	assert.Zero(t, e.Submitted())
}

func TestPlacement_Valid(t *testing.T) {
	assert.True(t, Edgewards.Valid())
	assert.True(t, MappingOnly.Valid())
	assert.False(t, Placement("").Valid())
}
