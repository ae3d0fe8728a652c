package viewengine_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pugc-lang/pugc/internal/source"
	"github.com/pugc-lang/pugc/internal/viewengine"
)

func TestCacheHitAvoidsRebuild(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hi"), ModTime: time.Unix(1000, 0)},
	}
	c := viewengine.NewCache()

	builds := 0
	build := func() (string, source.DepMap, error) {
		builds++
		return "artifact", source.DepMap{"a.pug": time.Unix(1000, 0)}, nil
	}

	e1, err := c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, "artifact", e1.Artifact)
	require.Equal(t, 1, builds)

	e2, err := c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, "artifact", e2.Artifact)
	require.Equal(t, 1, builds, "second Get should hit the cache, not rebuild")
}

func TestCacheRebuildsWhenDependencyMtimeChanges(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hi"), ModTime: time.Unix(1000, 0)},
	}
	c := viewengine.NewCache()

	builds := 0
	build := func() (string, source.DepMap, error) {
		builds++
		return "artifact", source.DepMap{"a.pug": time.Unix(1000, 0)}, nil
	}
	_, err := c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, 1, builds)

	fsys["a.pug"] = &fstest.MapFile{Data: []byte("p hi changed"), ModTime: time.Unix(2000, 0)}

	_, err = c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, 2, builds, "a changed dependency mtime should force a rebuild")
}

func TestCacheSeparatesByFlagsHash(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hi"), ModTime: time.Unix(1000, 0)},
	}
	c := viewengine.NewCache()

	builds := 0
	build := func(artifact string) viewengine.BuildFunc {
		return func() (string, source.DepMap, error) {
			builds++
			return artifact, source.DepMap{"a.pug": time.Unix(1000, 0)}, nil
		}
	}

	e1, err := c.Get(fsys, "a.pug", "h1", build("artifact-1"))
	require.NoError(t, err)
	e2, err := c.Get(fsys, "a.pug", "h2", build("artifact-2"))
	require.NoError(t, err)

	require.Equal(t, "artifact-1", e1.Artifact)
	require.Equal(t, "artifact-2", e2.Artifact)
	require.Equal(t, 2, builds)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hi"), ModTime: time.Unix(1000, 0)},
	}
	c := viewengine.NewCache()

	builds := 0
	build := func() (string, source.DepMap, error) {
		builds++
		return "artifact", source.DepMap{"a.pug": time.Unix(1000, 0)}, nil
	}
	_, err := c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	c.Invalidate("a.pug", "h1")
	_, err = c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, 2, builds)
}

func TestCacheRebuildsWhenDependencyMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"a.pug": {Data: []byte("p hi"), ModTime: time.Unix(1000, 0)},
		"b.pug": {Data: []byte("p included"), ModTime: time.Unix(1000, 0)},
	}
	c := viewengine.NewCache()

	builds := 0
	build := func() (string, source.DepMap, error) {
		builds++
		return "artifact", source.DepMap{"a.pug": time.Unix(1000, 0), "b.pug": time.Unix(1000, 0)}, nil
	}
	_, err := c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)

	delete(fsys, "b.pug")

	_, err = c.Get(fsys, "a.pug", "h1", build)
	require.NoError(t, err)
	require.Equal(t, 2, builds, "a missing dependency should force a rebuild")
}
