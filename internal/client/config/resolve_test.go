package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetroops/pos-lebanon/internal/client/auth"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(auth.ConfigDirEnvVar, dir)
	t.Setenv(URLEnvVar, "")
	t.Setenv(TokenEnvVar, "")
	return dir
}

func TestResolveURL(t *testing.T) {
	isolate(t)

	_, err := ResolveURL("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), URLEnvVar)

	require.NoError(t, auth.SaveCredentials("http://stored:8069/", "alice:secret"))
	url, err := ResolveURL("")
	require.NoError(t, err)
	assert.Equal(t, "http://stored:8069", url)

	t.Setenv(URLEnvVar, "http://env:8069//")
	url, err = ResolveURL("")
	require.NoError(t, err)
	assert.Equal(t, "http://env:8069", url)

	url, err = ResolveURL("http://flag:8069/")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:8069", url)
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name           string
		flag           string
		env            string
		stored         string
		expected       string
		expectedSource Source
	}{
		{name: "flag wins over env and stored", flag: "flag:pw", env: "env:pw", stored: "stored:pw", expected: "flag:pw", expectedSource: SourceFlag},
		{name: "env wins over stored", env: "env:pw", stored: "stored:pw", expected: "env:pw", expectedSource: SourceEnv},
		{name: "falls back to stored", stored: "stored:pw", expected: "stored:pw", expectedSource: SourceStored},
		{name: "nothing configured", expected: "", expectedSource: SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(TokenEnvVar, tt.env)
			if tt.stored != "" {
				require.NoError(t, auth.SaveCredentials("http://pos.local", tt.stored))
			}

			token, source, err := ResolveToken(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
			assert.Equal(t, tt.expectedSource, source)
		})
	}
}

func TestResolveToken_CorruptStore(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.yaml"), []byte("token: [oops"), 0600))

	_, _, err := ResolveToken("")
	assert.Error(t, err)
}
