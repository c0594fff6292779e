package middleware

import (
	"reflect"
	"testing"
)

func TestSplitOrigins(t *testing.T) {
	cases := []struct {
		in          string
		wantValid   []string
		wantInvalid []string
	}{
		{"https://App.example.com/", []string{"https://app.example.com"}, nil},
		{"app.example.com", nil, []string{"app.example.com"}},
		{" http://a.test , b.test ,, https://c.test ", []string{"http://a.test", "https://c.test"}, []string{"b.test"}},
	}
	for _, tc := range cases {
		valid, invalid := splitOrigins(tc.in)
		if !reflect.DeepEqual(valid, tc.wantValid) || !reflect.DeepEqual(invalid, tc.wantInvalid) {
			t.Errorf("splitOrigins(%q) = %v, %v; want %v, %v", tc.in, valid, invalid, tc.wantValid, tc.wantInvalid)
		}
	}
}
