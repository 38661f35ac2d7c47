package models

import "testing"

func TestUppercaseFields(t *testing.T) {
	district := "wayanad"
	p := struct {
		Name     string
		District *string
		Email    string
		Distance float64
	}{
		Name:     "kalpetta",
		District: &district,
		Email:    "user@example.com",
		Distance: 72.5,
	}

	UppercaseFields(&p, "Email")

	if p.Name != "KALPETTA" {
		t.Errorf("Name = %q, want KALPETTA", p.Name)
	}
	if *p.District != "WAYANAD" {
		t.Errorf("District = %q, want WAYANAD", *p.District)
	}
	if p.Email != "user@example.com" {
		t.Errorf("excluded field was changed: %q", p.Email)
	}
	if p.Distance != 72.5 {
		t.Errorf("non-string field touched: %v", p.Distance)
	}
}

func TestUppercaseFieldsNilSafe(t *testing.T) {
	type s struct {
		Name   string
		Remark *string
	}
	v := &s{Name: "abc"}
	UppercaseFields(v)
	if v.Name != "ABC" || v.Remark != nil {
		t.Fatalf("unexpected result: %+v", v)
	}

	UppercaseFields(nil)
	var np *s
	UppercaseFields(np)
}
