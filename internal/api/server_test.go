package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/l2editor/internal/config"
	"github.com/udisondev/l2editor/internal/data"
	"github.com/udisondev/l2editor/internal/editor"
)

const testItems = `<list>
	<item id="1" type="Weapon" name="Short Sword">
		<set name="weight" val="1600" />
	</item>
	<item id="15" type="Armor" name="Leather Shirt" />
	<item id="57" type="EtcItem" name="Adena" />
</list>`

const testTrees = `<list>
	<skillTree type="classSkillTree" classId="0">
		<skill skillName="Power Strike" skillId="3" skillLevel="1" getLevel="5" levelUpSp="50" />
		<skill skillName="Mortal Blow" skillId="16" skillLevel="1" getLevel="5" levelUpSp="50" />
		<skill skillName="Power Strike" skillId="3" skillLevel="2" getLevel="10" levelUpSp="150" />
		<skill skillName="Relax" skillId="226" skillLevel="1" getLevel="20" levelUpSp="1200" />
	</skillTree>
</list>`

type listResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

func newTestServer(t *testing.T) (*Server, *editor.Session, string) {
	t.Helper()
	dir := t.TempDir()
	itemsPath := filepath.Join(dir, "items.xml")
	treesPath := filepath.Join(dir, "skillTrees.xml")
	require.NoError(t, os.WriteFile(itemsPath, []byte(testItems), 0o644))
	require.NoError(t, os.WriteFile(treesPath, []byte(testTrees), 0o644))

	session := editor.NewSession(map[editor.Kind]string{
		editor.KindItems:      itemsPath,
		editor.KindSkillTrees: treesPath,
	}, nil)
	require.NoError(t, session.Load(context.Background()))

	return New(session, config.DefaultEditor().HTTP), session, dir
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRequestsAreLoggedThroughSlog(t *testing.T) {
	s, _, _ := newTestServer(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	do(t, s, http.MethodGet, "/api/items/2", "")

	line := buf.String()
	assert.Contains(t, line, `msg="http request"`)
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "path=/api/items/2")
	assert.Contains(t, line, "status=404")
}

func TestListAndSearch(t *testing.T) {
	s, _, _ := newTestServer(t)

	tests := []struct {
		target string
		want   []int32
	}{
		{target: "/api/items", want: []int32{1, 15, 57}},
		{target: "/api/items?q=armor", want: []int32{15}},
		{target: "/api/items?q=5", want: []int32{15, 57}},
		{target: "/api/items?q=nothing", want: []int32{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decode[listResponse[data.Item]](t, rec)
			ids := []int32{}
			for _, it := range resp.Items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), resp.TotalCount)
		})
	}
}

func TestGetItem(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	it := decode[data.Item](t, rec)
	assert.Equal(t, "Short Sword", it.Name)
	v, ok := it.SetValue("weight")
	assert.True(t, ok)
	assert.Equal(t, "1600", v)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/items/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/items/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/npcs/1", "").Code)
}

func TestCreateAllocatesNextID(t *testing.T) {
	s, session, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/items", `{"id": 3, "name": "Bow"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[data.Item](t, rec)
	assert.Equal(t, int32(58), created.ID, "client id is ignored")
	assert.Equal(t, "Bow", created.Name)
	assert.Equal(t, "Weapon", created.Type, "defaults kept for missing fields")

	rec = do(t, s, http.MethodPost, "/api/items", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(59), decode[data.Item](t, rec).ID)

	_ = session.Edit(func(r *editor.Repos) error {
		assert.Equal(t, 5, r.Items.Len())
		return nil
	})

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/items", `{"id": "x"`).Code)
}

func TestCreateFixedSkillDefaults(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/fixedskills", `{"name": "Wind Walk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	sk := decode[data.FixedSkill](t, rec)
	assert.Equal(t, int32(1), sk.ID)
	assert.Equal(t, "Wind Walk", sk.Name)
	assert.Equal(t, int32(data.DefaultReuseDelay), sk.ReuseDelay)
}

func TestCreateWhenIDsExhausted(t *testing.T) {
	s, session, _ := newTestServer(t)
	_ = session.Edit(func(r *editor.Repos) error {
		r.Items.Add(&data.Item{ID: math.MaxInt32, Name: "Last"})
		return nil
	})

	rec := do(t, s, http.MethodPost, "/api/items", `{"name": "Bow"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodPost, "/api/items/1/clone", "").Code)

	_ = session.Edit(func(r *editor.Repos) error {
		assert.Equal(t, 4, r.Items.Len())
		return nil
	})
}

func TestRejectsTextXMLCannotCarry(t *testing.T) {
	s, session, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/items", `{"name": "a\u0001b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "cannot be stored")

	rec = do(t, s, http.MethodPut, "/api/items/1", `{"name": "ok", "sets": [{"name": "icon", "val": "\u001b"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_ = session.Edit(func(r *editor.Repos) error {
		assert.Equal(t, 3, r.Items.Len())
		it, _ := r.Items.FindByID(1)
		assert.Equal(t, "Short Sword", it.Name)
		return nil
	})
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s, session, _ := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/items/15", `{"id": 99, "type": "Armor", "name": "Tunic"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(15), decode[data.Item](t, rec).ID)

	_ = session.Edit(func(r *editor.Repos) error {
		all := r.Items.All()
		require.Len(t, all, 3)
		assert.Equal(t, "Tunic", all[1].Name)
		assert.Equal(t, int32(15), all[1].ID)
		return nil
	})

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPut, "/api/items/2", `{"name": "x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPut, "/api/items/1", `not json`).Code)
}

func TestClone(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/items/1/clone", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	c := decode[data.Item](t, rec)
	assert.Equal(t, int32(58), c.ID)
	assert.Equal(t, "Short Sword (Clone)", c.Name)

	rec = do(t, s, http.MethodGet, "/api/items?q=clone", "")
	assert.Equal(t, 1, decode[listResponse[data.Item]](t, rec).TotalCount)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/api/items/2/clone", "").Code)
}

func TestDelete(t *testing.T) {
	s, session, _ := newTestServer(t)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/items/57", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/items/57", "").Code)

	_ = session.Edit(func(r *editor.Repos) error {
		_, ok := r.Items.FindByID(57)
		assert.False(t, ok)
		assert.Equal(t, 2, r.Items.Len())
		return nil
	})
}

func TestSave(t *testing.T) {
	s, _, dir := newTestServer(t)

	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/items/15", "").Code)

	rec := do(t, s, http.MethodPost, "/api/items/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := os.ReadFile(filepath.Join(dir, "items.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Leather Shirt")
	assert.Contains(t, string(raw), "Short Sword")

	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodPost, "/api/skills/save", "").Code)
}

func TestTreeEntries(t *testing.T) {
	s, _, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		want   []int32 // skill ids
	}{
		{name: "all", target: "/api/skilltrees/0/entries", want: []int32{3, 16, 3, 226}},
		{name: "at level", target: "/api/skilltrees/0/entries?level=5", want: []int32{3, 16}},
		{name: "range", target: "/api/skilltrees/0/entries?min=6&max=20", want: []int32{3, 226}},
		{name: "open max", target: "/api/skilltrees/0/entries?min=10", want: []int32{3, 226}},
		{name: "open min", target: "/api/skilltrees/0/entries?max=5", want: []int32{3, 16}},
		{name: "empty", target: "/api/skilltrees/0/entries?level=80", want: []int32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decode[listResponse[data.SkillTreeEntry]](t, rec)
			ids := []int32{}
			for _, e := range resp.Items {
				ids = append(ids, e.SkillID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/skilltrees/7/entries", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/skilltrees/0/entries?level=x", "").Code)
}
