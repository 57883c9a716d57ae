package salesfeed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/almacen-api/internal/application/alerts"
)

var _ alerts.SalesFeed = (*RemoteFeed)(nil)

// RemoteFeed adaptador del feed de ventas contra un servicio HTTP externo.
// Se usa cuando SALES_FEED_URL está configurado; si no, el feed es la tabla
// local (postgres.SalesActivityRepo).
type RemoteFeed struct {
	client *resty.Client
}

// NewRemoteFeed construye el cliente del feed remoto.
func NewRemoteFeed(baseURL string) *RemoteFeed {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	return &RemoteFeed{client: client}
}

type activityResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// RecentlySoldProductIDs consulta GET /activity?company_id=&since= del
// servicio remoto. El feed es consultivo: un error aquí aborta el pipeline de
// alertas pero no afecta el estado del inventario.
func (f *RemoteFeed) RecentlySoldProductIDs(ctx context.Context, companyID string, since time.Time) ([]string, error) {
	var out activityResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("company_id", companyID).
		SetQueryParam("since", since.UTC().Format(time.RFC3339)).
		SetResult(&out).
		Get("/activity")
	if err != nil {
		return nil, fmt.Errorf("consultar feed de ventas: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed de ventas respondió %s", resp.Status())
	}
	return out.ProductIDs, nil
}
