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

package library

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/model"
	"m4o.io/roadbuilder/store"
)

func testConfigs() []model.Config {
	var cfgs []model.Config

	for _, id := range []string{"road", "path"} {
		kind := model.KindRoad
		if id == "path" {
			kind = model.KindPath
		}

		cfg := model.NewConfig(kind)
		cfg.Base().Identify(id)
		cfg.Base().Name = "My " + id
		cfg.Base().Lanes = []*model.LaneConfig{model.NewGroupLane("Sidewalk")}

		cfgs = append(cfgs, cfg)
	}

	return cfgs
}

func bundle(t *testing.T, cfgs []model.Config) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	enc := roadbuilder.NewEncoder(&buf)
	require.NoError(t, enc.EncodeBatch(cfgs))
	require.NoError(t, enc.Close())

	return &buf
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()

	b, err := store.OpenBadger(store.InMemoryConfig())
	require.NoError(t, err)

	defer b.Close()

	saved, skipped, err := runSave(ctx, bundle(t, testConfigs()), b, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Zero(t, skipped)

	ids, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"path", "road"}, ids)

	test_cases := []struct {
		name  string
		ids   []string
		names []string
	}{
		{name: "all", names: []string{"My path", "My road"}},
		{name: "selected", ids: []string{"road"}, names: []string{"My road"}},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			n, err := runLoad(ctx, b, &buf, tc.ids, roadbuilder.LZ4)
			require.NoError(t, err)
			assert.Equal(t, len(tc.names), n)

			d, err := roadbuilder.NewDecoder(ctx, &buf)
			require.NoError(t, err)
			defer d.Close()

			cfgs, err := d.DecodeAll()
			require.NoError(t, err)

			var names []string
			for _, c := range cfgs {
				names = append(names, c.Base().Name)
			}

			assert.Equal(t, tc.names, names)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	d, err := store.OpenDir(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer

	_, err = runLoad(context.Background(), d, &buf, []string{"nope"}, roadbuilder.RAW)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Zero(t, buf.Len())
}
