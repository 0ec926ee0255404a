package sandsim

import "fmt"

// UnknownMaterialError is returned by color lookups and cell writes when a
// material name isn't registered. It never mutates grid state.
type UnknownMaterialError struct {
	Name string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("sandsim: unknown material %q", e.Name)
}
