package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			name: "npm tree",
			in:   `{"dependencies":{"a":{"version":"1.0.0"}},"devDependencies":{"b":{"version":"2.0.0"}}}`,
			want: map[string]string{"a": "1.0.0", "b": "2.0.0"},
		},
		{
			name: "pnpm array",
			in:   `[{"name":"app","dependencies":{"a":{"version":"1.0.0"}}},{"devDependencies":{"c":{"version":"3.0.0"}}}]`,
			want: map[string]string{"a": "1.0.0", "c": "3.0.0"},
		},
		{
			name: "yarn event stream",
			in: `{"type":"info","data":"listing"}
{"type":"tree","data":{"type":"list","trees":[{"name":"a@1.0.0"},{"name":"@scope/b@2.1.0"}]}}`,
			want: map[string]string{"a": "1.0.0", "@scope/b": "2.1.0"},
		},
		{
			name: "yarn single record",
			in:   `{"type":"tree","data":{"trees":[{"name":"x@0.1.0"}]}}`,
			want: map[string]string{"x": "0.1.0"},
		},
		{name: "empty", in: "", want: map[string]string{}},
		{name: "garbage", in: "npm ERR! oops", want: map[string]string{}},
		{name: "entry without version", in: `{"dependencies":{"a":{}}}`, want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseListing([]byte(tt.in)))
		})
	}
}

func TestParseOutdated(t *testing.T) {
	t.Run("keyed object", func(t *testing.T) {
		got := parseOutdated([]byte(`{"b":{"current":"1","wanted":"2","latest":"3"},"a":{"current":"1","latest":"1.1"}}`))
		assert.Equal(t, []Outdated{
			{Name: "a", Current: "1", Latest: "1.1"},
			{Name: "b", Current: "1", Wanted: "2", Latest: "3"},
		}, got)
	})

	t.Run("table stream", func(t *testing.T) {
		in := `{"type":"info","data":"Color legend"}
{"type":"table","data":{"head":["Package","Current","Wanted","Latest","Package Type"],"body":[["vue","3.3.0","3.3.4","3.4.0","dependencies"]]}}`
		assert.Equal(t, []Outdated{{Name: "vue", Current: "3.3.0", Wanted: "3.3.4", Latest: "3.4.0"}}, parseOutdated([]byte(in)))
	})

	t.Run("table without package column", func(t *testing.T) {
		in := `{"type":"table","data":{"head":["Current"],"body":[["1.0.0"]]}}`
		assert.Empty(t, parseOutdated([]byte(in)))
	})

	t.Run("garbage", func(t *testing.T) {
		got := parseOutdated([]byte("<html>"))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSplitNameVersion(t *testing.T) {
	name, version, ok := splitNameVersion("@scope/pkg@1.2.3")
	assert.True(t, ok)
	assert.Equal(t, "@scope/pkg", name)
	assert.Equal(t, "1.2.3", version)

	_, _, ok = splitNameVersion("@scope/pkg")
	assert.False(t, ok)
	_, _, ok = splitNameVersion("pkg@")
	assert.False(t, ok)
}
