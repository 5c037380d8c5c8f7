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
			args:    []string{"-c", "conf.json", "-db", "world.db"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-lat", "39.9"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-lat"},
			allowed: []string{"-lat"},
			want:    []string{"-lat"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-lat", "39.9", "-c", "conf.json", "-lon", "116.4"},
			allowed: []string{"-lat", "-lon"},
			want:    []string{"-lat", "39.9", "-lon", "116.4"},
		},
		{
			name:    "negative number is a value",
			args:    []string{"-lat", "-33.87", "-lon", "151.21"},
			allowed: []string{"-lat", "-lon"},
			want:    []string{"-lat", "-33.87", "-lon", "151.21"},
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

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/world.json"}, "/etc/world.json"},
		{"long", []string{"-config", "/etc/world.json"}, "/etc/world.json"},
		{"equals", []string{"-db", "x.db", "-config=/etc/world.json"}, "/etc/world.json"},
		{"absent", []string{"-db", "x.db"}, ""},
		{"last wins", []string{"-c", "/a.json", "-config", "/b.json"}, "/b.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
