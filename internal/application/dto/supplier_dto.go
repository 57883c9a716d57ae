package dto

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
