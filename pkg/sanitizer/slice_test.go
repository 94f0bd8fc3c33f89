package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dedupe after normalization",
			input: []string{"WiFi", "wifi", " wifi "},
			want:  []string{"wifi"},
		},
		{
			name:  "drop empties and keep order",
			input: []string{"laundry", "", "Power Backup", "ac"},
			want:  []string{"laundry", "power_backup", "ac"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeURLs(t *testing.T) {
	got := NormalizeURLs([]string{"http://a.com/x", "https://a.com/x", "  "})
	want := []string{"https://a.com/x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeURLs = %v, want %v", got, want)
	}
}
