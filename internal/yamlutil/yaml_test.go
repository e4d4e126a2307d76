package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags"`
	Scale float64  `yaml:"scale"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		strict  bool
		want    sample
		wantErr error
		anyErr  bool
	}{
		{
			name: "valid document",
			data: "name: report\ntags: [h1, h2]\nscale: 1.5\n",
			want: sample{Name: "report", Tags: []string{"h1", "h2"}, Scale: 1.5},
		},
		{
			name: "unknown field ignored when lenient",
			data: "name: report\nextra: true\n",
			want: sample{Name: "report"},
		},
		{
			name:   "unknown field rejected when strict",
			data:   "name: report\nextra: true\n",
			strict: true,
			anyErr: true,
		},
		{
			name:    "empty input",
			data:    "",
			wantErr: ErrEmptyInput,
		},
		{
			name:   "malformed yaml",
			data:   "name: [unclosed\n",
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got sample
			err := Decode([]byte(tt.data), &got, tt.strict)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.anyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want.Name || got.Scale != tt.want.Scale || strings.Join(got.Tags, ",") != strings.Join(tt.want.Tags, ",") {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode_NilDestination(t *testing.T) {
	t.Parallel()

	if err := Decode([]byte("a: 1"), nil, false); !errors.Is(err, ErrNilDestination) {
		t.Errorf("error = %v, want %v", err, ErrNilDestination)
	}
}

func TestDecode_TooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, MaxInputSize+1)
	var v sample
	if err := Decode(data, &v, false); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("error = %v, want %v", err, ErrInputTooLarge)
	}
}
