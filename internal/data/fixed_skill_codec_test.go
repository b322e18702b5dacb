package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixedSkill_Defaults(t *testing.T) {
	s := NewFixedSkill(1204, "Wind Walk")

	assert.Equal(t, int32(1204), s.ID)
	assert.Equal(t, int32(1), s.Level)
	assert.Equal(t, "OP_ACTIVE", s.OperateType)
	assert.Equal(t, int32(10), s.MpConsume)
	assert.Equal(t, int32(400), s.CastRange)
	assert.Equal(t, int32(900), s.EffectRange)
	assert.Equal(t, int32(10), s.SkillTime)
	assert.Equal(t, int32(5000), s.ReuseDelay)
	assert.Equal(t, "target_one", s.Target)
	assert.Equal(t, "BUFF", s.SkillType)
	assert.False(t, s.MagicCritical)
}

func TestFixedSkillCodec_RoundTrip(t *testing.T) {
	crit := NewFixedSkill(1177, "Wind Strike")
	crit.Level = 2
	crit.MagicLevel = 7
	crit.HpConsume = 3
	crit.ItemConsume = 2
	crit.Attribute = "wind"
	crit.SkillType = "MDAM"
	crit.MagicCritical = true

	skills := []*FixedSkill{
		NewFixedSkill(1204, "Wind Walk"),
		crit,
		{ID: 9, Name: "zeroes"},
	}

	codec := FixedSkillCodec{}
	decoded, err := codec.Decode(codec.Encode(skills))
	require.NoError(t, err)
	assert.Equal(t, skills, decoded)
}

func TestFixedSkillCodec_EncodeAttributeOrder(t *testing.T) {
	out := string(FixedSkillCodec{}.Encode([]*FixedSkill{NewFixedSkill(1, "A")}))

	assert.Contains(t, out, `<skill id="1" level="1" name="A" operateType="OP_ACTIVE" magicLevel="0" `+
		`mpConsume="10" hpConsume="0" itemConsume="0" castRange="400" effectRange="900" skillTime="10" `+
		`reuseDelay="5000" target="target_one" skillType="BUFF" magicCritical="false" />`)
}

func TestFixedSkillCodec_DecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "bad integer", doc: `<list><skill id="1" castRange="far"/></list>`, field: "castRange"},
		{name: "bad boolean", doc: `<list><skill id="1" magicCritical="maybe"/></list>`, field: "magicCritical"},
		{name: "missing id", doc: `<list><skill level="1"/></list>`, field: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FixedSkillCodec{}.Decode([]byte(tt.doc))
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "skill", pe.Element)
			assert.Equal(t, 0, pe.Index)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}
