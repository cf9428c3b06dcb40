// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories runs each contract test against both implementations.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			v, ok, err := s.Get(KeyTheme)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			require.NoError(t, s.Set(KeyTheme, "dark"))
			require.NoError(t, s.Set(KeyTheme, "light"))

			v, ok, err := s.Get(KeyTheme)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "light", v)
		})
	}
}

func TestStore_ClosedErrors(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			require.NoError(t, s.Close())

			_, _, err := s.Get(KeyTheme)
			assert.True(t, errors.Is(err, ErrClosed), "Get after Close: %v", err)
			assert.True(t, errors.Is(s.Set(KeyTheme, "dark"), ErrClosed))
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(KeyTheme, "dark")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(KeyTheme)
		}()
	}
	wg.Wait()
}
