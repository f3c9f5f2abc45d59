package netcdf3

import "unicode/utf8"

// validName reports whether name satisfies the §4.1 identifier rule used
// for dimensions, variables, and attributes: length in [1, 256], the first
// byte is an ASCII letter, underscore, or any byte >= 0x80, subsequent
// bytes are ASCII alphanumeric, '_', '.', '+', '-', '@', or any byte >=
// 0x80, and the whole string is valid UTF-8.
//
// cdf (the vendored teacher library) has no equivalent check at all — it
// trusts the caller. This validator is new in this package, following
// spec.md's rule directly since the retrieved original_source only shows
// the call site (dimension.rs's check_dim_name -> is_valid_name), not the
// rule's own implementation.
func validName(name string) bool {
	if len(name) < 1 || len(name) > 256 {
		return false
	}
	if !utf8.ValidString(name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i == 0 {
			if !isNameStart(c) {
				return false
			}
			continue
		}
		if !isNameCont(c) {
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	if c >= 0x80 {
		return true
	}
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isNameCont(c byte) bool {
	if c >= 0x80 {
		return true
	}
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '+', '-', '@':
		return true
	}
	return false
}

// checkName validates name and, if invalid, returns an *InvalidNameError.
func checkName(name string) error {
	if !validName(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}
