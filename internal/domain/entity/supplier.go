package entity

// Supplier representa un proveedor de la empresa. Puede estar asociado a
// muchos productos (y un producto a muchos proveedores).
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactInfo string
}
