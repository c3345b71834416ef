package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cvt")
	if tag.String() != "cvt " {
		t.Errorf("expected tag T(cvt) to be padded to 'cvt ', is %q", tag.String())
	}
	if T("DFLT") != DFLT {
		t.Errorf("expected DFLT constant to equal T(DFLT)")
	}
}

func TestNewTagValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, tc := range []struct {
		in string
		ok bool
	}{
		{"liga", true},
		{"ss01", true},
		{"OS/2", true},
		{"cv1", true},
		{"", false},
		{"toolong", false},
		{" abc", false},
		{"a bc", false},
		{"ab\x01c", false},
		{"ab\x7fc", false},
		{"äb", false},
	} {
		_, err := NewTag(tc.in)
		if tc.ok && err != nil {
			t.Errorf("expected tag %q to be valid, got %v", tc.in, err)
		} else if !tc.ok && err == nil {
			t.Errorf("expected tag %q to be rejected", tc.in)
		}
	}
	if Tag(0x01020304).Valid() {
		t.Errorf("expected control bytes to make tag invalid")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected T to panic on invalid tag")
		}
	}()
	_ = T(" bad")
}

func TestSortedTags(t *testing.T) {
	m := map[Tag]int{T("latn"): 1, T("DFLT"): 2, T("cyrl"): 3, T("arab"): 4}
	tags := SortedTags(m)
	want := []Tag{T("DFLT"), T("arab"), T("cyrl"), T("latn")}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected ascending tag order %v, have %v", want, tags)
		}
	}
}

func TestOptionSentinel(t *testing.T) {
	o := FromSentinel[uint16](0xFFFF, 0xFFFF)
	if o.IsSome() {
		t.Errorf("expected sentinel to map to None")
	}
	if ToSentinel(o, 0xFFFF) != 0xFFFF {
		t.Errorf("expected None to map back to sentinel")
	}
	o = FromSentinel[uint16](3, 0xFFFF)
	if v, ok := o.Unwrap(); !ok || v != 3 {
		t.Errorf("expected Some(3), have %v", o)
	}
	if None[int]().Or(7) != 7 {
		t.Errorf("expected default for None")
	}
}
