package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Version
		wantErr bool
	}{
		"plain":          {input: "1.2.3", want: Version{1, 2, 3}},
		"v prefix":       {input: "v0.10.0", want: Version{0, 10, 0}},
		"whitespace":     {input: " 4.0.12\n", want: Version{4, 0, 12}},
		"two parts":      {input: "1.2", wantErr: true},
		"four parts":     {input: "1.2.3.4", wantErr: true},
		"negative":       {input: "1.-2.3", wantErr: true},
		"pre-release":    {input: "1.2.3-rc1", wantErr: true},
		"empty":          {input: "", wantErr: true},
		"not a number":   {input: "a.b.c", wantErr: true},
		"leading zeroes": {input: "01.002.0003", want: Version{1, 2, 3}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBump(t *testing.T) {
	tests := map[string]struct {
		from string
		d    Designation
		want string
	}{
		"patch":                 {from: "1.2.3", d: Patch, want: "1.2.4"},
		"minor resets patch":    {from: "1.2.3", d: Minor, want: "1.3.0"},
		"major resets the rest": {from: "1.2.3", d: Major, want: "2.0.0"},
		"from zero":             {from: "0.0.0", d: Patch, want: "0.0.1"},
		"multi digit":           {from: "9.99.999", d: Patch, want: "9.99.1000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.from).Bump(tt.d).String())
		})
	}
}

func TestParseDesignation(t *testing.T) {
	for _, d := range Designations() {
		got, err := ParseDesignation(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDesignation(" MINOR ")
	require.NoError(t, err)
	assert.Equal(t, Minor, got)

	_, err = ParseDesignation("huge")
	assert.Error(t, err)
}

func TestReleaseBranchName(t *testing.T) {
	tests := map[string]struct {
		version   string
		releasing []Designation
		want      string
	}{
		"major only":  {version: "2.0.0", releasing: []Designation{Major}, want: "release/2.X.X"},
		"major minor": {version: "2.3.0", releasing: []Designation{Major, Minor}, want: "release/2.3.X"},
		"all":         {version: "2.3.4", releasing: []Designation{Major, Minor, Patch}, want: "release/2.3.4"},
		"patch only":  {version: "2.3.4", releasing: []Designation{Patch}, want: "release/2.X.4"},
		"none":        {version: "1.0.0", releasing: nil, want: "release/1.X.X"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReleaseBranchName(MustParse(tt.version), tt.releasing))
		})
	}
}

func TestReleases(t *testing.T) {
	releasing := []Designation{Major, Minor}
	assert.True(t, Releases(Major, releasing))
	assert.True(t, Releases(Minor, releasing))
	assert.False(t, Releases(Patch, releasing))
}
