package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/webdekho/schoolctl/pkg/types"
)

// Report and backup endpoints sit outside the uniform resource shape.
const (
	endpointFeeCollection         = "report_fee_collection"
	endpointFeeCollectionDownload = "report_fee_collection_download"
	endpointBackupDownload        = "backups_download"
)

// FeeCollectionReport fetches the fee-collection rows for a date range and
// academic year. An empty yearID asks for all years.
func (c *Client) FeeCollectionReport(ctx context.Context, from, to, yearID string) ([]types.FeeCollectionRow, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	if yearID != "" {
		params.Set("academic_year", yearID)
	}

	resp, err := c.do(ctx, http.MethodGet, c.apipath(endpointFeeCollection)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}

	page, err := normalizeListBody(body)
	if err != nil {
		return nil, err
	}
	rows := make([]types.FeeCollectionRow, len(page.Items))
	for i, raw := range page.Items {
		if err := json.Unmarshal(raw, &rows[i]); err != nil {
			return nil, fmt.Errorf("%w: report row %d: %v", types.ErrInvalidData, i, err)
		}
	}
	return rows, nil
}

// FeeCollectionDownloadURL returns the direct-download URL for the report
// export.
func (c *Client) FeeCollectionDownloadURL(from, to, yearID string) string {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	if yearID != "" {
		params.Set("academic_year", yearID)
	}
	return c.DownloadURL(endpointFeeCollectionDownload, params)
}

// BackupDownloadURL returns the direct-download URL for a backup file.
func (c *Client) BackupDownloadURL(id string) string {
	params := url.Values{}
	params.Set("id", id)
	return c.DownloadURL(endpointBackupDownload, params)
}
