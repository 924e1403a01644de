package roles

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"customer", Customer, false},
		{"Sales", Sales, false},
		{" ADMIN ", Admin, false},
		{"guest", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRole) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownRole", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		role Role
		view View
		want bool
	}{
		{Customer, Catalog, true},
		{Customer, Calendar, true},
		{Customer, Deals, false},
		{Sales, Deals, true},
		{Sales, Products, false},
		{Admin, Products, true},
		{Admin, Detail, false},
		{Role("guest"), Calendar, false},
	}

	for _, tt := range tests {
		if got := tt.role.Allows(tt.view); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.role, tt.view, got, tt.want)
		}
	}
}

func TestEveryRoleSeesCalendar(t *testing.T) {
	for _, r := range All() {
		if !r.Allows(Calendar) {
			t.Errorf("%s should see the shipment calendar", r)
		}
		if r.Title() == string(r) {
			t.Errorf("%s has no display title", r)
		}
	}
}

func TestViews_ReturnsCopy(t *testing.T) {
	v := Customer.Views()
	v[0] = Products
	if Customer.Views()[0] != Catalog {
		t.Error("Views leaked internal slice")
	}
}
