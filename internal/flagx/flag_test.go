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
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
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
			name:    "next flag is not a value",
			args:    []string{"-c", "-d", "dsn"},
			allowed: []string{"-c", "-d"},
			want:    []string{"-c", "-d", "dsn"},
		},
		{
			name:    "order preserved",
			args:    []string{"-a", ":8000", "-k", "x", "-s", "secret"},
			allowed: []string{"-a", "-s"},
			want:    []string{"-a", ":8000", "-s", "secret"},
		},
		{
			name:    "empty",
			args:    []string{},
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

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/etc/short.json", ConfigFilePath([]string{"-c", "/etc/short.json"}))
	assert.Equal(t, "/etc/long.json", ConfigFilePath([]string{"-a", ":1", "-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/2.json", ConfigFilePath([]string{"-c", "/etc/1.json", "-config=/etc/2.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-x", "1"}))
}
