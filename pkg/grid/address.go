package grid

import "fmt"

// Address is a (section, row) coordinate in the view's space.
type Address struct {
	Section int
	Row     int
}

// Addr is shorthand for constructing an Address.
func Addr(section, row int) Address {
	return Address{Section: section, Row: row}
}

// String returns the address in "section/row" form.
func (a Address) String() string {
	return fmt.Sprintf("%d/%d", a.Section, a.Row)
}
