package ottables

import (
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGasp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, err := ot.Marshal(SmoothGasp())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x01, 0xff, 0xff, 0x00, 0x0f}, data)
	//
	legacy := &GaspTable{Ranges: []GaspRange{
		{MaxPPEM: 8, Behavior: GaspDoGray},
		{MaxPPEM: 16, Behavior: GaspGridfit},
		{MaxPPEM: 0xFFFF, Behavior: GaspGridfit | GaspDoGray},
	}}
	data, err = ot.Marshal(legacy)
	require.NoError(t, err)
	back, err := ot.Unmarshal[GaspTable](data)
	require.NoError(t, err)
	assert.Equal(t, *legacy, back)
	assert.Equal(t, GaspDoGray, back.Behavior(6))
	assert.Equal(t, GaspGridfit, back.Behavior(16))
	assert.Equal(t, "gridfit|dogray", back.Behavior(17).String())
	assert.Equal(t, "none", GaspBehavior(0).String())
	//
	_, err = ot.Unmarshal[GaspTable]([]byte{0, 2, 0, 0})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	_, err = ot.Unmarshal[GaspTable]([]byte{0, 1, 0, 2, 0, 8, 0, 1})
	assert.ErrorIs(t, err, ot.ErrUnexpectedEOF)
}

func TestPrep(t *testing.T) {
	data, err := ot.Marshal(SmoothPrep())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xb8, 0x01, 0xff, 0x85, 0xb0, 0x04, 0x8d}, data)
	prep, err := ot.Unmarshal[PrepTable](data)
	require.NoError(t, err)
	assert.Equal(t, *SmoothPrep(), prep)
	assert.Equal(t, "prep", prep.Tag().String())
}

func TestMaxp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cff := []byte{0x00, 0x00, 0x50, 0x00, 0x01, 0x2c}
	maxp, err := ot.Unmarshal[MaxpTable](cff)
	require.NoError(t, err)
	assert.Equal(t, uint16(300), maxp.NumGlyphs)
	assert.Equal(t, ot.GlyphID(299), maxp.MaxGlyphID())
	assert.Nil(t, maxp.Rest)
	data, err := ot.Marshal(&maxp)
	require.NoError(t, err)
	assert.Equal(t, cff, data)
	//
	truetype := make([]byte, 32)
	copy(truetype, []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 0x00, 0x40})
	maxp, err = ot.Unmarshal[MaxpTable](truetype)
	require.NoError(t, err)
	assert.Len(t, maxp.Rest, 26)
	data, err = ot.Marshal(&maxp)
	require.NoError(t, err)
	assert.Equal(t, truetype, data)
	//
	_, err = ot.Unmarshal[MaxpTable]([]byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x01})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestAvar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	f := ot.F2Dot14From
	avar := AvarTable{
		MajorVersion: 1,
		Axes: ot.Counted[SegmentMap, *SegmentMap]{
			{{f(-1), f(-1)}, {f(0), f(0)}, {f(0.5), f(0.75)}, {f(1), f(1)}},
			nil,
		},
	}
	data, err := ot.Marshal(&avar)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x04,
		0xc0, 0x00, 0xc0, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x20, 0x00, 0x30, 0x00,
		0x40, 0x00, 0x40, 0x00,
		0x00, 0x00,
	}, data)
	back, err := ot.Unmarshal[AvarTable](data)
	require.NoError(t, err)
	assert.Equal(t, avar, back)
	//
	assert.Equal(t, f(0.75), back.Map(0, f(0.5)))
	assert.Equal(t, f(0.375), back.Map(0, f(0.25)))
	assert.Equal(t, f(-0.5), back.Map(0, f(-0.5)))
	assert.Equal(t, f(0.3), back.Map(1, f(0.3)), "axis without mapping")
	assert.Equal(t, f(0.3), back.Map(5, f(0.3)), "axis out of range")
}
