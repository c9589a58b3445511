package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "eb.json", "-server", "http://x"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "eb.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=eb.json", "-server", "http://x"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=eb.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-config=a.json", "-c", "b.json", "-v"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=a.json", "-c", "b.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-x", "1", "--y=2", "word"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token is a flag",
			args:    []string{"-c", "-debug"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/eb.json", JSONConfigPath([]string{"-c", "/etc/eb.json"}))
	assert.Equal(t, "/etc/eb.json", JSONConfigPath([]string{"-server", "http://x", "-config=/etc/eb.json"}))
	assert.Equal(t, "b.json", JSONConfigPath([]string{"-c", "a.json", "-config", "b.json"}))
	assert.Empty(t, JSONConfigPath([]string{"-data-dir", "/tmp"}))
}

func TestEnvFilePath(t *testing.T) {
	assert.Equal(t, ".env.local", EnvFilePath([]string{"-env-file", ".env.local", "-c", "x.json"}))
	assert.Empty(t, EnvFilePath(nil))
}
