// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/model"
	"m4o.io/roadbuilder/store"
)

type backendFactory func(t *testing.T) store.Backend

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"badger": func(t *testing.T) store.Backend {
			b, err := store.OpenBadger(store.InMemoryConfig())
			require.NoError(t, err)

			return b
		},
		"dir": func(t *testing.T) store.Backend {
			d, err := store.OpenDir(filepath.Join(t.TempDir(), "configs"))
			require.NoError(t, err)

			return d
		},
	}
}

func newRoad(id, name string) model.Config {
	r, _ := model.NewConfig(model.KindRoad).(*model.RoadConfig)
	r.Identify(id)
	r.Name = name
	r.Category = model.RaisedSidewalk
	r.Lanes = []*model.LaneConfig{model.NewSegmentLane("Sidewalk 3.5"), model.NewGroupLane("Car")}
	r.SpeedLimit = 50

	return r
}

func TestBackend(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			b := open(t)
			defer func() { assert.NoError(t, b.Close()) }()

			ids, err := b.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)

			_, err = b.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, b.Put(ctx, "b", []byte("second")))
			require.NoError(t, b.Put(ctx, "a", []byte("first")))
			require.NoError(t, b.Put(ctx, "b", []byte("replaced")))

			data, err := b.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, []byte("replaced"), data)

			ids, err = b.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, ids)

			require.NoError(t, b.Delete(ctx, "a"))
			require.NoError(t, b.Delete(ctx, "a"))

			ids, err = b.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, ids)

			assert.ErrorIs(t, b.Put(ctx, "../escape", nil), store.ErrInvalidID)
			assert.ErrorIs(t, b.Put(ctx, "", nil), store.ErrInvalidID)
		})
	}
}

func TestHiddenIDRejected(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			b := open(t)
			defer b.Close()

			for _, id := range []string{".hidden", ".", "..", ".rbc"} {
				assert.ErrorIs(t, b.Put(ctx, id, nil), store.ErrInvalidID, id)
				assert.ErrorIs(t, store.Save(ctx, b, newRoad(id, "Hidden")), store.ErrInvalidID, id)
			}

			require.NoError(t, store.Save(ctx, b, newRoad("visible", "Visible")))

			cfgs, err := store.LoadAll(ctx, b)
			require.NoError(t, err)
			require.Len(t, cfgs, 1)
			assert.Equal(t, "visible", cfgs[0].Base().ID)
		})
	}
}

func TestBackendCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()

			assert.ErrorIs(t, b.Put(ctx, "a", nil), context.Canceled)

			_, err := b.Get(ctx, "a")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			b := open(t)
			defer b.Close()

			cfg := newRoad("road-1", "Avenue")
			require.NoError(t, store.Save(ctx, b, cfg))

			got, err := store.Load(ctx, b, "road-1")
			require.NoError(t, err)

			want, err := roadbuilder.Serialize(cfg)
			require.NoError(t, err)

			have, err := roadbuilder.Serialize(got)
			require.NoError(t, err)

			assert.Equal(t, want, have)
			assert.Equal(t, "Avenue", got.Base().Name)

			_, err = store.Load(ctx, b, "road-2")

			var cerr *roadbuilder.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "road-2", cerr.ID)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestLoadAll(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			b := open(t)
			defer b.Close()

			for _, id := range []string{"c", "a", "b"} {
				require.NoError(t, store.Save(ctx, b, newRoad(id, "Road "+id)))
			}

			require.NoError(t, b.Put(ctx, "broken", []byte{0x01}))

			cfgs, err := store.LoadAll(ctx, b)

			var cerr *roadbuilder.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "broken", cerr.ID)

			ids := make([]string, 0, len(cfgs))
			for _, c := range cfgs {
				ids = append(ids, c.Base().ID)
			}

			assert.Equal(t, []string{"a", "b", "c"}, ids)
		})
	}
}

func TestDirIgnoresForeignFiles(t *testing.T) {
	path := t.TempDir()

	d, err := store.OpenDir(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(path, ".partial.rbc"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(path, "sub"+store.FileExtension), 0o750))
	require.NoError(t, d.Put(context.Background(), "road", []byte("x")))

	ids, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"road"}, ids)
	assert.FileExists(t, filepath.Join(path, "road"+store.FileExtension))
}

func TestBadgerPersistent(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "db")
	cfg.SyncWrites = false

	b, err := store.OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, b.Put(context.Background(), "kept", []byte("value")))
	require.NoError(t, b.Close())

	b, err = store.OpenBadger(cfg)
	require.NoError(t, err)

	defer b.Close()

	data, err := b.Get(context.Background(), "kept")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), data)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := store.OpenBadger(store.DefaultConfig())
	assert.Error(t, err)
}
