package importer

import (
	"reflect"
	"testing"
)

func TestMapRow(t *testing.T) {
	mapping := map[string]string{
		"First Name": "firstName",
		"Last Name":  "lastName",
		"Email":      "emails",
		"Phone":      "phoneNumbers",
		"VAN ID":     "vanid",
	}

	tests := []struct {
		name string
		raw  map[string]any
		want map[string]string
	}{
		{
			name: "unmapped columns dropped, values trimmed",
			raw: map[string]any{
				"First Name": "  Ada ",
				"Last Name":  "Lovelace",
				"Ignored":    "value",
			},
			want: map[string]string{"firstName": "Ada", "lastName": "Lovelace"},
		},
		{
			name: "null and undefined literals dropped",
			raw: map[string]any{
				"First Name": "Ada",
				"Last Name":  "NULL",
				"Email":      "undefined",
				"Phone":      nil,
			},
			want: map[string]string{"firstName": "Ada"},
		},
		{
			name: "numeric values stringified without float artifacts",
			raw: map[string]any{
				"VAN ID":     float64(104523),
				"First Name": "Ada",
			},
			want: map[string]string{"vanid": "104523", "firstName": "Ada"},
		},
		{
			name: "empty strings omitted entirely",
			raw:  map[string]any{"First Name": "", "Last Name": "   "},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRow(tt.raw, mapping)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapRow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapRowIsStableAcrossPasses(t *testing.T) {
	mapping := map[string]string{"Name": "firstName"}
	raw := map[string]any{"Name": " Ada "}

	first := MapRow(raw, mapping)
	second := MapRow(raw, mapping)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat mapping differs: %v vs %v", first, second)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a@x.com, b@x.com", []string{"a@x.com", "b@x.com"}},
		{"one", []string{"one"}},
		{" , ,x, ", []string{"x"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := SplitList(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
