package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var scenario = []float64{12.34, 10.01, 15.00, 9.87, 11.20}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, " YAML ": YAML, "yml": YAML, "csv": CSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestBuildAverages(t *testing.T) {
	doc := Build(scenario)
	require.Len(t, doc.Solves, 5)
	assert.Nil(t, doc.Solves[3].Ao5)
	require.NotNil(t, doc.Solves[4].Ao5)
	assert.InDelta(t, 11.684, *doc.Solves[4].Ao5, 1e-9)
	assert.Nil(t, doc.Solves[4].Ao12)
	assert.Equal(t, "00:09.870", doc.Solves[3].Time)

	assert.Equal(t, 5, doc.Summary.Count)
	require.NotNil(t, doc.Summary.Best)
	assert.Equal(t, 9.87, *doc.Summary.Best)
	assert.Nil(t, doc.Summary.Ao12)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, scenario))
	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Build(scenario), doc)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, scenario))
	assert.Contains(t, buf.String(), "solves:")
	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Build(scenario), doc)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, scenario))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "index,seconds,time,ao5,ao12", lines[0])
	assert.Equal(t, "1,12.340,00:12.340,,", lines[1])
	assert.Equal(t, "5,11.200,00:11.200,11.684,", lines[5])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, nil))
	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 0, doc.Summary.Count)
	assert.Empty(t, doc.Solves)
}
