package grid

import (
	"testing"

	"github.com/ladybug-tools/daylightgrid/pkg/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTripGeometry(t *testing.T) {
	g := twoPointGrid("office")

	data, err := g.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "office", loaded.Name())
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, g.Point(0).Location, loaded.Point(0).Location)
	assert.Equal(t, g.Point(1).Direction, loaded.Point(1).Direction)
	assert.Equal(t, Raw, loaded.State())
}

func TestJSONRoundTripValues(t *testing.T) {
	g := twoPointGrid("office")
	require.NoError(t, g.Point(0).SetCoupledValues([][]float64{{420, 20}, {155, 5}}, []int{8, 9}, "", ""))
	require.NoError(t, g.Point(1).SetCoupledValues([][]float64{{100, 0}, {50, 0}}, []int{8, 9}, "", ""))

	data, err := g.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, LoadedAnnual, loaded.State())
	assert.Equal(t, []int{8, 9}, loaded.Hoys())

	s, err := loaded.Point(0).CoupledValue(9, "", "")
	require.NoError(t, err)
	assert.Equal(t, 155.0, s.Total)
	assert.Equal(t, 5.0, s.Direct)
	assert.True(t, loaded.HasDirectValues())
}

func TestJSONTotalsOnly(t *testing.T) {
	g := twoPointGrid("office")
	g.Point(0).SetValue(500, 12, "", "", false)
	g.Point(1).SetValue(300, 12, "", "", false)

	data, err := g.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, LoadedSnapshot, loaded.State())
	assert.False(t, loaded.HasDirectValues())

	v, err := loaded.Point(0).Value(12, "", "")
	require.NoError(t, err)
	assert.Equal(t, 500.0, v)
}

func TestJSONDropsFileDescriptors(t *testing.T) {
	g := twoPointGrid("office")
	g.AddResultFiles(results.FileDescriptor{Path: "office..default.ill"}, false)

	data, err := g.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	total, direct := loaded.ResultFiles()
	assert.Empty(t, total)
	assert.Empty(t, direct)
	assert.Equal(t, Raw, loaded.State())
}

func TestFromJSONMalformed(t *testing.T) {
	_, err := FromJSON([]byte("{not json"))
	require.Error(t, err)
}
