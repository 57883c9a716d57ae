package entity

// BundleComponent asocia un producto bundle con uno de sus componentes.
// Los componentes no pueden ser bundles a su vez (sin anidamiento).
type BundleComponent struct {
	BundleID    string
	ComponentID string
	Quantity    int64
}
