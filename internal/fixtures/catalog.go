package fixtures

import (
	"go-object-inspector/internal/catalog"
)

// Register adds the demo objects to c.
func Register(c *catalog.Catalog) error {
	objects := []struct {
		name string
		obj  any
	}{
		{"classA", NewClassA()},
		{"classB", NewClassB()},
		{"classC", NewClassC()},
		{"classD", NewClassDWithVal(42)},
		{"chain", NewChain(5)},
		{"loop", NewClassB().Loop()},
	}
	for _, o := range objects {
		if err := c.Add(o.name, o.obj); err != nil {
			return err
		}
	}
	return nil
}
