package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	t.Setenv("RETROSHELF_TEST_KEY", "from-env")

	v := viper.New()
	assert.Equal(t, "from-env", GetString(v, "RETROSHELF_TEST_KEY"))

	v.Set("RETROSHELF_TEST_KEY", "from-viper")
	assert.Equal(t, "from-viper", GetString(v, "RETROSHELF_TEST_KEY"))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/shelf.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "shelf.db"), got)

	got, err = ExpandHome("/abs/shelf.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/shelf.db", got)
}

func TestStorePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		backend string
		path    string
		want    string
	}{
		{backend: "bolt", want: filepath.Join(home, ".retroshelf", "retroshelf.bolt")},
		{backend: "sqlite", want: filepath.Join(home, ".retroshelf", "retroshelf.db")},
		{backend: "sqlite", path: "/tmp/x.db", want: "/tmp/x.db"},
		{backend: "memory", want: ""},
		{backend: "rtdb", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.backend+tt.path, func(t *testing.T) {
			got, err := StorePath(tt.backend, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
