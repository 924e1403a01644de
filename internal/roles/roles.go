// Package roles maps the three dashboard personas onto the views they see.
// Selecting a role is a presentation toggle, not an access-control boundary.
package roles

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is a dashboard persona.
type Role string

const (
	Customer Role = "customer"
	Sales    Role = "sales"
	Admin    Role = "admin"
)

// View is a group of related operations shown to a role.
type View string

const (
	Catalog  View = "catalog"
	Detail   View = "detail"
	Calendar View = "calendar"
	Deals    View = "deals"
	Products View = "products"
)

var views = map[Role][]View{
	Customer: {Catalog, Detail, Calendar},
	Sales:    {Deals, Calendar},
	Admin:    {Products, Calendar},
}

var titles = map[Role]string{
	Customer: "顧客",
	Sales:    "営業担当者",
	Admin:    "管理者",
}

// All lists the roles in selection-screen order.
func All() []Role {
	return []Role{Customer, Sales, Admin}
}

// Parse accepts a role name case-insensitively.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := views[r]; !ok {
		return "", fmt.Errorf("%w: %q (want customer, sales or admin)", ErrUnknownRole, s)
	}
	return r, nil
}

// Views returns the views available to the role, in menu order.
func (r Role) Views() []View {
	return slices.Clone(views[r])
}

// Allows reports whether the role's dashboard includes v.
func (r Role) Allows(v View) bool {
	return slices.Contains(views[r], v)
}

// Title is the display label of the role.
func (r Role) Title() string {
	if t, ok := titles[r]; ok {
		return t
	}
	return string(r)
}
