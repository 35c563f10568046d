package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

const dynamicSpecYAML = `
machines: 2
jobs:
  - due: 12
    ops:
      - {machine: 0, time: 3}
      - {machine: 1, time: 2}
  - arrival: 4
    ops:
      - {machine: 1, time: 5}
`

func TestParseInstanceSpec_ToConfig(t *testing.T) {
	spec, err := ParseInstanceSpec([]byte(dynamicSpecYAML))
	require.NoError(t, err)

	cfg, err := spec.ToConfig()

	require.NoError(t, err)
	assert.Equal(t, sim.InstanceConfig{
		Machines: 2,
		Jobs: []sim.JobConfig{
			{DueDate: 12, Ops: []sim.OpConfig{{MachineID: 0, ProcessTime: 3}, {MachineID: 1, ProcessTime: 2}}},
			{Arrival: 4, Ops: []sim.OpConfig{{MachineID: 1, ProcessTime: 5}}},
		},
	}, cfg)
}

func TestParseInstanceSpec_UnknownField_Rejected(t *testing.T) {
	_, err := ParseInstanceSpec([]byte("machines: 1\njobz: []\n"))

	assert.ErrorIs(t, err, sim.ErrMalformedInput)
}

func TestInstanceSpec_ToConfig_InvalidMachine(t *testing.T) {
	spec := &InstanceSpec{Machines: 1, Jobs: []JobSpec{{Ops: []OpSpec{{Machine: 4, Time: 1}}}}}

	_, err := spec.ToConfig()

	assert.ErrorIs(t, err, sim.ErrMalformedInput)
}

func TestLoadInstanceSpec_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dynamicSpecYAML), 0o644))

	spec, err := LoadInstanceSpec(path)

	require.NoError(t, err)
	assert.Equal(t, 2, spec.Machines)
	assert.Len(t, spec.Jobs, 2)
}
