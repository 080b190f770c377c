package modelstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/auslib/core/factory"
	"github.com/kilianp07/auslib/core/library"
	"github.com/kilianp07/auslib/core/model"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{"memory": NewMemory(), "sqlite": sq}
}

func TestStore_AddLookupDecode(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := model.PeopleDefinition{Name: "office people", AreaPerPerson: 10}
			h, err := s.Add(ctx, library.KindPeople, in.Name, in)
			require.NoError(t, err)
			assert.Equal(t, library.KindPeople, h.Kind)
			assert.Equal(t, in.Name, h.Name)

			got, err := s.Lookup(ctx, library.KindPeople, in.Name)
			require.NoError(t, err)
			assert.Equal(t, h, got)

			var out model.PeopleDefinition
			require.NoError(t, s.Decode(ctx, library.KindPeople, in.Name, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestStore_NamesUniquePerKind(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Add(ctx, library.KindLights, "office", model.LightsDefinition{Name: "office"})
			require.NoError(t, err)
			_, err = s.Add(ctx, library.KindLights, "office", model.LightsDefinition{Name: "office"})
			assert.ErrorIs(t, err, ErrDuplicateName)

			// same name under another kind is fine
			_, err = s.Add(ctx, library.KindEquipment, "office", model.EquipmentDefinition{Name: "office"})
			assert.NoError(t, err)
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Lookup(ctx, library.KindRuleset, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
			var out map[string]any
			assert.ErrorIs(t, s.Decode(ctx, library.KindRuleset, "missing", &out), ErrNotFound)
		})
	}
}

func TestStore_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"c", "a", "b"} {
				_, err := s.Add(ctx, library.KindOutdoorAir, n, model.OutdoorAir{Name: n, FlowPerPerson: 7.5})
				require.NoError(t, err)
			}
			hs, err := s.List(ctx, library.KindOutdoorAir)
			require.NoError(t, err)
			require.Len(t, hs, 3)
			assert.Equal(t, []string{"a", "b", "c"}, []string{hs[0].Name, hs[1].Name, hs[2].Name})

			empty, err := s.List(ctx, library.KindSpaceType)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "file:newtest?mode=memory&cache=shared"}})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = New(factory.ModuleConfig{Type: "sqlite"})
	assert.Error(t, err)
	_, err = New(factory.ModuleConfig{Type: "postgres"})
	assert.ErrorContains(t, err, "unknown module type")
}
