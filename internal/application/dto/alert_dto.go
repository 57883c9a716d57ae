package dto

// SupplierRef referencia al proveedor en una alerta. nil en la alerta cuando
// el producto no tiene proveedor asociado (no es un error).
type SupplierRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// LowStockAlertDTO una alerta de stock bajo para un par (producto, bodega).
type LowStockAlertDTO struct {
	ProductID         string       `json:"product_id"`
	ProductName       string       `json:"product_name"`
	SKU               string       `json:"sku"`
	WarehouseID       string       `json:"warehouse_id"`
	WarehouseName     string       `json:"warehouse_name"`
	CurrentStock      int64        `json:"current_stock"`
	Threshold         int64        `json:"threshold"`
	DaysUntilStockout int64        `json:"days_until_stockout"`
	Supplier          *SupplierRef `json:"supplier"`
}

// LowStockAlertsResponse lista de alertas con el total (== len(alerts)).
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
