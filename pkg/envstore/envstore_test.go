package envstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"
)

func TestStore_GetCachesPresentAndAbsent(t *testing.T) {
	acc := envstore.MapAccessor{"FOO": "bar"}
	store := envstore.New(acc)

	val, ok := store.Get("FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", val)

	_, ok = store.Get("MISSING")
	require.False(t, ok)

	// 缓存命中后，真实环境的变化不再可见（包括缺失标记）
	acc["FOO"] = "changed"
	acc["MISSING"] = "late"

	val, ok = store.Get("FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", val)

	_, ok = store.Get("MISSING")
	assert.False(t, ok, "cached absent marker should shadow late definition")
}

func TestStore_RefreshRebuildsSnapshot(t *testing.T) {
	acc := envstore.MapAccessor{"A": "1"}
	store := envstore.New(acc)

	_, ok := store.Get("B")
	require.False(t, ok)

	acc["B"] = "2"
	store.Refresh()

	val, ok := store.Get("A")
	require.True(t, ok)
	assert.Equal(t, "1", val)

	val, ok = store.Get("B")
	require.True(t, ok)
	assert.Equal(t, "2", val)
}

func TestStore_SetWritesThrough(t *testing.T) {
	acc := envstore.MapAccessor{}
	store := envstore.New(acc)

	require.NoError(t, store.Set("KEY", "value"))

	val, ok := store.Get("KEY")
	require.True(t, ok)
	assert.Equal(t, "value", val)

	real, ok := acc["KEY"]
	require.True(t, ok)
	assert.Equal(t, "value", real)
}

func TestStore_DeleteWritesThrough(t *testing.T) {
	acc := envstore.MapAccessor{"KEY": "value"}
	store := envstore.New(acc)

	require.NoError(t, store.Delete("KEY"))

	_, ok := store.Get("KEY")
	assert.False(t, ok)
	_, ok = acc["KEY"]
	assert.False(t, ok)

	// 删除后的重新写入仍然可见
	acc["KEY"] = "back"
	_, ok = store.Get("KEY")
	assert.False(t, ok, "absent marker persists until refresh or set")

	store.Refresh()
	val, ok := store.Get("KEY")
	require.True(t, ok)
	assert.Equal(t, "back", val)
}

func TestStore_RealProcessEnvironment(t *testing.T) {
	t.Setenv("ENVSTORE_TEST_VAR", "live")

	store := envstore.New(nil)
	store.Refresh()

	val, ok := store.Get("ENVSTORE_TEST_VAR")
	require.True(t, ok)
	assert.Equal(t, "live", val)
}
