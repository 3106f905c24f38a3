package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "studydeck-test.db")
	s, err := Open(context.Background(), DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("Driver = %q, want %q", s.Driver(), DriverSQLite)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("mysql"), "whatever")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestContentGetMissing(t *testing.T) {
	repo := openTestStore(t).ContentRepo()

	_, err := repo.Get(context.Background(), "nst_content_CBSE_10_Science_ch1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing key err = %v, want ErrNotFound", err)
	}
}

func TestContentPutAndGet(t *testing.T) {
	repo := openTestStore(t).ContentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k1", []byte(`{"type":"NOTES"}`)))
	got, err := repo.Get(ctx, "k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"NOTES"}`, string(got))

	// Put replaces the existing body.
	require.NoError(t, repo.Put(ctx, "k1", []byte(`{"type":"PDF"}`)))
	got, err = repo.Get(ctx, "k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"PDF"}`, string(got))
}

func TestContentKeysPrefix(t *testing.T) {
	repo := openTestStore(t).ContentRepo()
	ctx := context.Background()

	for _, k := range []string{
		"nst_content_CBSE_10_Science_ch2",
		"nst_content_CBSE_10_Science_ch1",
		"nstXcontent_CBSE_10_Science_ch1", // would match LIKE 'nst_content_%'
		"nst_custom_chapters_CBSE-10-Science-English",
	} {
		require.NoError(t, repo.Put(ctx, k, []byte("{}")))
	}

	keys, err := repo.Keys(ctx, "nst_content_")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"nst_content_CBSE_10_Science_ch1",
		"nst_content_CBSE_10_Science_ch2",
	}, keys)

	all, err := repo.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestContentDelete(t *testing.T) {
	repo := openTestStore(t).ContentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "nst_content_CBSE_10_Science_ch1", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "nst_content_CBSE_10_Science_ch1"))

	_, err := repo.Get(ctx, "nst_content_CBSE_10_Science_ch1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nst_content_CBSE_10_Science_ch1"), ErrNotFound)
}

func TestRebind(t *testing.T) {
	pg := &contentRepo{driver: DriverPostgres}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &contentRepo{driver: DriverSQLite}
	assert.Equal(t, "SELECT ?", lite.rebind("SELECT ?"))
}
