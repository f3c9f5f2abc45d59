package netcdf3

import "testing"

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"_private", true},
		{"temp.2", true},
		{"a+b-c@d", true},
		{"café", true},
		{"", false},
		{"1x", false},
		{"a b", false},
		{"a/b", false},
	}
	for _, c := range cases {
		if got := validName(c.name); got != c.want {
			t.Errorf("validName(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValidNameMaxLength(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	if !validName(string(long)) {
		t.Error("256-byte name should be valid")
	}
	long = append(long, 'a')
	if validName(string(long)) {
		t.Error("257-byte name should be invalid")
	}
}

func TestCheckName(t *testing.T) {
	if err := checkName("ok_name"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := checkName("1bad")
	if err == nil {
		t.Fatal("expected error")
	}
	var nameErr *InvalidNameError
	if _, ok := err.(*InvalidNameError); !ok {
		t.Errorf("got %T, want *InvalidNameError", err)
	} else {
		nameErr = err.(*InvalidNameError)
		if nameErr.Name != "1bad" {
			t.Errorf("Name = %q, want %q", nameErr.Name, "1bad")
		}
	}
}
