package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCompareFlagsBindsAndParses(t *testing.T) {
	var opts CompareOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterCompareFlags(fs, &opts)

	require.NoError(t, fs.Parse([]string{
		"--chunk-size=4096", "--quick-check", "--size-precheck=false", "--proxy=http://proxy:8080",
		"--header=X-Api-Key=secret", "--header=Accept=*/*", "--timeout=5s",
		"--follow-redirects", "--verify-ssl=false", "--allow-private",
	}))

	assert.Equal(t, 4096, opts.ChunkSize)
	assert.True(t, opts.QuickCheck)
	assert.False(t, opts.SizePrecheck)
	assert.Equal(t, "http://proxy:8080", opts.Proxy)
	assert.Equal(t, map[string]string{"X-Api-Key": "secret", "Accept": "*/*"}, opts.Headers)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.True(t, opts.FollowRedirects)
	assert.False(t, opts.VerifySSL)
	assert.True(t, opts.AllowPrivate)
}

func TestRegisterDirFlagsDefaults(t *testing.T) {
	var opts DirOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterDirFlags(fs, &opts)

	require.NoError(t, fs.Parse(nil))

	assert.True(t, opts.SizePrecheck)
	assert.False(t, opts.FollowSymlinks)
	assert.False(t, opts.Parallel)
	assert.Equal(t, 0, opts.MaxWorkers)
	assert.True(t, opts.VerifySSL)
}

func TestRegisterDirFlagsBindsHTTPOptionsForDirURLMapCompare(t *testing.T) {
	var opts DirOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterDirFlags(fs, &opts)

	require.NoError(t, fs.Parse([]string{"--proxy=http://proxy:9090", "--header=A=b", "--allow-private"}))

	assert.Equal(t, "http://proxy:9090", opts.Proxy)
	assert.Equal(t, map[string]string{"A": "b"}, opts.Headers)
	assert.True(t, opts.AllowPrivate)
}

func TestRegisterArchiveFlagsBinds(t *testing.T) {
	var opts ArchiveOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterArchiveFlags(fs, &opts)

	require.NoError(t, fs.Parse([]string{"--max-entries=10", "--max-compression-ratio=50.5", "--hash-compare"}))

	assert.Equal(t, 10, opts.MaxEntries)
	assert.Equal(t, 50.5, opts.MaxCompressionRatio)
	assert.True(t, opts.HashCompare)
}
