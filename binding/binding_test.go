package binding

import "testing"

func TestInterpolate(t *testing.T) {
	rec := map[string]string{"Name": "Ember Beetle", "Cost": "3"}
	cases := []struct {
		in, want string
	}{
		{"${Name}.png", "Ember Beetle.png"},
		{"${ name }-${cost}", "Ember Beetle-3"},
		{"${missing}.png", "${missing}.png"},
		{"${}", "${}"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, FromMap(rec)); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := Interpolate("${Name}", nil); got != "${Name}" {
		t.Fatalf("nil lookup should leave text untouched, got %q", got)
	}
}
