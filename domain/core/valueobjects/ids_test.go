package valueobjects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeID(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()

	assert.False(t, a.IsZero())
	assert.NotEqual(t, a.String(), b.String())

	_, err := uuid.Parse(a.String())
	assert.NoError(t, err)
}

func TestNodeIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "uuid", input: "3d754bbf-1234-4cde-9f01-aaaaaaaaaaaa", want: "3d754bbf-1234-4cde-9f01-aaaaaaaaaaaa"},
		{name: "external id", input: "artifact-42", want: "artifact-42"},
		{name: "trims whitespace", input: "  n1  ", want: "n1"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NodeIDFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestIDEquality(t *testing.T) {
	a, err := NodeIDFromString("same")
	require.NoError(t, err)
	b, err := NodeIDFromString("same")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewNodeID()))
	assert.True(t, NodeID{}.IsZero())
}

func TestArtifactIDFromString(t *testing.T) {
	id, err := ArtifactIDFromString("tool-result-7")
	require.NoError(t, err)
	assert.Equal(t, "tool-result-7", id.String())

	_, err = ArtifactIDFromString("")
	assert.Error(t, err)
}
