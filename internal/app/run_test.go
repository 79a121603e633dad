package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/fogtopo/internal/engine"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/scenario"
	"github.com/specialistvlad/fogtopo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEngine counts submissions and can be told to fail.
type recordingEngine struct {
	submitted []*engine.Deployment
	err       error
}

func (e *recordingEngine) Submit(_ context.Context, d *engine.Deployment) error {
	if e.err != nil {
		return e.err
	}
	e.submitted = append(e.submitted, d)
	return nil
}

func newTestApp(t *testing.T, cfg Config, eng engine.Engine) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	logs := &testutil.SafeBuffer{}
	a := NewApp(logs, c, eng)
	t.Cleanup(func() {
		if os.Getenv("FOGTOPO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, logs
}

func TestRun_GeneratedSmartWaste(t *testing.T) {
	eng := &recordingEngine{}
	a, logs := newTestApp(t, Config{Areas: 5, Bins: 5}, eng)

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, eng.submitted, 1)

	d := eng.submitted[0]
	assert.Equal(t, 32, d.Topology.Len())
	assert.Equal(t, scenario.AppID, d.Application.ID())
	assert.Len(t, d.Mapping.DevicesFor(scenario.WasteInfoModule), 25)
	assert.Equal(t, engine.Edgewards, d.Placement)
	assert.Contains(t, logs.String(), "run_id="+a.RunID())
}

func TestRun_CloudMode(t *testing.T) {
	eng := &recordingEngine{}
	a, _ := newTestApp(t, Config{Areas: 2, Bins: 2, CloudMode: true}, eng)

	require.NoError(t, a.Run(context.Background()))
	d := eng.submitted[0]
	assert.Equal(t, engine.MappingOnly, d.Placement)
	assert.Equal(t, []string{scenario.CloudName}, d.Mapping.DevicesFor(scenario.MasterModule))
}

func TestRun_ExportAndReload(t *testing.T) {
	for _, ext := range []string{".hcl", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			exportPath := filepath.Join(dir, "topology"+ext)

			first := &recordingEngine{}
			a, _ := newTestApp(t, Config{Areas: 3, Bins: 2, ExportPath: exportPath}, first)
			require.NoError(t, a.Run(context.Background()))

			second := &recordingEngine{}
			b, _ := newTestApp(t, Config{TopologyPath: exportPath}, second)
			require.NoError(t, b.Run(context.Background()))

			want, got := first.submitted[0], second.submitted[0]
			assert.Equal(t, want.Topology.Nodes(), got.Topology.Nodes())
			assert.Equal(t, want.Topology.Sensors(), got.Topology.Sensors())
			assert.Equal(t, want.Mapping.Assignments(), got.Mapping.Assignments())
		})
	}
}

func TestRun_FailureAbortsBeforeSubmit(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"two_roots.yaml": `
nodes:
  - {id: 1, name: cloud, level: 0, mips: 1, ram: 1, up_bw: 1, down_bw: 1, rate_per_mips: 0, busy_power: 1, idle_power: 1, cost: {processing: 0, memory: 0, storage: 0, bandwidth: 0}}
  - {id: 2, name: cloud2, level: 0, mips: 1, ram: 1, up_bw: 1, down_bw: 1, rate_per_mips: 0, busy_power: 1, idle_power: 1, cost: {processing: 0, memory: 0, storage: 0, bandwidth: 0}}
`,
	})
	metricsPath := filepath.Join(dir, "run.prom")

	eng := &recordingEngine{}
	a, _ := newTestApp(t, Config{TopologyPath: filepath.Join(dir, "two_roots.yaml"), MetricsPath: metricsPath}, eng)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.True(t, fogerr.IsKind(err, fogerr.Structural), err.Error())
	assert.Empty(t, eng.submitted)

	out, readErr := os.ReadFile(metricsPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(out), `fogtopo_build_failures_total{kind="structural error"} 1`)
}

func TestRun_ExportFailureIsRecorded(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "run.prom")

	eng := &recordingEngine{}
	a, _ := newTestApp(t, Config{
		Areas:       1,
		Bins:        1,
		ExportPath:  filepath.Join(dir, "no-such-dir", "out.yaml"),
		MetricsPath: metricsPath,
	}, eng)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write topology export")
	assert.Empty(t, eng.submitted)

	out, readErr := os.ReadFile(metricsPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(out), `fogtopo_build_failures_total{kind="other"} 1`)
}

func TestRun_TagMismatchIsReferenceError(t *testing.T) {
	eng := &recordingEngine{}
	a, _ := newTestApp(t, Config{
		TopologyPath: filepath.Join("..", "hcl_adapter", "testdata", "ultrasonic.hcl"),
		Scenario:     scenario.Classic.Name,
	}, eng)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.True(t, fogerr.IsKind(err, fogerr.Reference), err.Error())
	assert.Empty(t, eng.submitted)
}

func TestRun_UltrasonicFile(t *testing.T) {
	eng := &recordingEngine{}
	a, _ := newTestApp(t, Config{
		TopologyPath: filepath.Join("..", "hcl_adapter", "testdata", "ultrasonic.hcl"),
		Scenario:     scenario.Ultrasonic.Name,
		CloudMode:    true,
	}, eng)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"B-0-0", "B-0-1"}, eng.submitted[0].Mapping.DevicesFor(scenario.WasteInfoModule))
}

func TestRun_EngineError(t *testing.T) {
	eng := &recordingEngine{err: errors.New("capacity exceeded")}
	a, _ := newTestApp(t, Config{Areas: 1, Bins: 1}, eng)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity exceeded")
}

func TestRun_DefaultEngine(t *testing.T) {
	a, logs := newTestApp(t, Config{Areas: 1, Bins: 2}, nil)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "Deployment accepted.")
}

func TestBuild_FreshAllocatorPerRun(t *testing.T) {
	a, _ := newTestApp(t, Config{Areas: 2, Bins: 2}, &recordingEngine{})
	first, err := a.Build(testutil.Context(t))
	require.NoError(t, err)
	second, err := a.Build(testutil.Context(t))
	require.NoError(t, err)
	assert.Equal(t, first.Topology.Nodes(), second.Topology.Nodes())
	assert.Equal(t, 1, second.Topology.Root().ID)
}
