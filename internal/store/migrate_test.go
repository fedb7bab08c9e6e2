package store

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

type fakeRow struct{ applied bool }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.applied
	return nil
}

type fakeExec struct {
	applied map[int]bool
	execs   []string
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) error {
	f.execs = append(f.execs, strings.TrimSpace(sql))
	if strings.HasPrefix(sql, "INSERT INTO _migrations") {
		f.applied[args[0].(int)] = true
	}
	return nil
}

func (f *fakeExec) QueryRow(_ context.Context, _ string, args ...any) interface{ Scan(dest ...any) error } {
	return fakeRow{applied: f.applied[args[0].(int)]}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pg/0002_notes.sql": {Data: []byte("CREATE TABLE note ();")},
		"pg/0001_init.sql":  {Data: []byte("CREATE TABLE tenant ();")},
		"pg/README.md":      {Data: []byte("ignored")},
	}
}

func TestParseMigrations_SortedAndFiltered(t *testing.T) {
	m := NewMigrator(testFS(), "pg")
	migs, err := m.ParseMigrations()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	require.Equal(t, 1, migs[0].Version)
	require.Equal(t, "init", migs[0].Name)
	require.Equal(t, 2, migs[1].Version)
}

func TestParseMigrations_DuplicateVersion(t *testing.T) {
	fsys := testFS()
	fsys["pg/0001_other.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	_, err := NewMigrator(fsys, "pg").ParseMigrations()
	require.Error(t, err)
}

func TestRun_SkipsApplied(t *testing.T) {
	exec := &fakeExec{applied: map[int]bool{1: true}}
	res, err := NewMigrator(testFS(), "pg").Run(context.Background(), exec)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Skipped)
	require.Equal(t, []int{2}, res.Applied)

	// Segunda corrida: todo aplicado.
	res, err = NewMigrator(testFS(), "pg").Run(context.Background(), exec)
	require.NoError(t, err)
	require.Empty(t, res.Applied)
	require.Equal(t, []int{1, 2}, res.Skipped)
}
