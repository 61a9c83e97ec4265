package sliceutil

import (
	"reflect"
	"testing"
)

func TestDeduplicate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{
			name:  "No duplicates",
			items: []string{"正心楼", "明德楼", "格物楼"},
			want:  []string{"正心楼", "明德楼", "格物楼"},
		},
		{
			name:  "With duplicates - preserve first",
			items: []string{"正心楼", "明德楼", "正心楼", "主楼"},
			want:  []string{"正心楼", "明德楼", "主楼"},
		},
		{
			name:  "Empty slice",
			items: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Deduplicate(tt.items, func(s string) string { return s })
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}
