package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/l2editor/internal/data"
)

func TestRepos_KindHelpers(t *testing.T) {
	r := newRepos()
	sword := &data.Item{ID: 1, Name: "Short Sword", Type: "Weapon"}
	r.Items.Add(sword)
	r.Items.Add(&data.Item{ID: 57, Name: "Adena", Type: "EtcItem"})
	r.FixedSkills.Add(data.NewFixedSkill(1204, "Wind Walk"))

	found, err := r.Search(KindItems, "sword")
	require.NoError(t, err)
	assert.Equal(t, []data.Definition{sword}, found)

	found, err = r.Search(KindSkills, "")
	require.NoError(t, err)
	assert.Empty(t, found)

	d, ok, err := r.Find(KindFixedSkills, 1204)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1204 - Wind Walk (level 1)", fmt.Sprint(d))

	removed, err := r.Delete(KindItems, 57)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = r.Delete(KindItems, 57)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, r.Items.Len())

	_, err = r.Search(Kind("npcs"), "")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, _, err = r.Find(Kind("npcs"), 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = r.Delete(Kind("npcs"), 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRepos_Clone(t *testing.T) {
	r := newRepos()
	src := &data.Item{
		ID:    10,
		Name:  "Bow",
		Type:  "Weapon",
		Sets:  data.NewAttributeBag(data.Attr{Name: "weight", Value: "1800"}),
		Stats: []data.ItemStat{{Type: "pAtk", Value: "23"}},
	}
	r.Items.Add(src)
	r.Items.Add(&data.Item{ID: 40, Name: "Arrow"})

	d, ok, err := r.Clone(KindItems, 10)
	require.NoError(t, err)
	require.True(t, ok)

	c := d.(*data.Item)
	assert.Equal(t, int32(41), c.ID)
	assert.Equal(t, "Bow (Clone)", c.Name)
	assert.Equal(t, src.Stats, c.Stats)
	assert.Equal(t, 3, r.Items.Len())

	c.Stats[0].Value = "99"
	c.Sets.Set("weight", "1")
	assert.Equal(t, "23", src.Stats[0].Value, "clone is deep")
	v, _ := src.Sets.Get("weight")
	assert.Equal(t, "1800", v)

	_, ok, err = r.Clone(KindItems, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepos_CloneSkillTree(t *testing.T) {
	r := newRepos()
	r.SkillTrees.Add(&data.SkillTreeClass{ClassID: 0, Type: "classSkillTree", Entries: []data.SkillTreeEntry{data.NewSkillTreeEntry()}})

	d, ok, err := r.Clone(KindSkillTrees, 0)
	require.NoError(t, err)
	require.True(t, ok)

	c := d.(*data.SkillTreeClass)
	assert.Equal(t, int32(1), c.ClassID)
	assert.Equal(t, "classSkillTree", c.Type)
	assert.Len(t, c.Entries, 1)
}
