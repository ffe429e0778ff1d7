package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalMapRoundTrip(t *testing.T) {
	m := NewApprovalMap()
	m[GateLabDip] = ApprovalApproved

	v, err := m.Value()
	require.NoError(t, err)

	var got ApprovalMap
	require.NoError(t, got.Scan(v))
	assert.Equal(t, ApprovalApproved, got[GateLabDip])
	assert.Equal(t, ApprovalPending, got[GatePPSample])

	// SQLite hands text columns back as strings, not []byte
	var fromString ApprovalMap
	require.NoError(t, fromString.Scan(`{"labDip":"rejected"}`))
	assert.Equal(t, ApprovalRejected, fromString[GateLabDip])
}

func TestJSONMapNilAndBadInput(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(42))

	require.NoError(t, m.Scan([]byte(`{"gate":"labDip"}`)))
	assert.Equal(t, "labDip", m["gate"])
}
