package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/storage"
)

const baseURL = "http://backend.test/api"

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewWithHTTPClient(baseURL+"/", hc)
}

func TestListReports_SendsFilters(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/reports/",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "FIG", req.URL.Query().Get("customer_name"))
			assert.Equal(t, "2026-04-09", req.URL.Query().Get("date"))
			assert.Empty(t, req.URL.Query().Get("part_name"))
			return httpmock.NewJsonResponse(http.StatusOK, []storage.ReportSummary{{ID: 3, ItemCount: 2}})
		})

	list, err := c.ListReports(context.Background(), storage.ReportFilter{CustomerName: "FIG", Date: "2026-04-09"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetReport_NotFound(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/reports/7/",
		httpmock.NewStringResponder(http.StatusNotFound, `{"detail":"Not found."}`))

	_, err := c.GetReport(context.Background(), 7)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not found.", apiErr.Detail)
	assert.ErrorIs(t, err, storage.ErrReportNotFound)
}

func TestCreateReport_ReturnsID(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/reports/",
		func(req *http.Request) (*http.Response, error) {
			var in storage.Report
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				return nil, err
			}
			in.ID = 12
			return httpmock.NewJsonResponse(http.StatusCreated, in)
		})

	id, err := c.CreateReport(context.Background(), &storage.Report{PartName: "BRACKET"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestUpdateReport_ServerErrorKeepsMessage(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPut, baseURL+"/reports/4/",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"duplicate sr_no in report"}`))

	err := c.UpdateReport(context.Background(), 4, &storage.Report{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "duplicate sr_no in report", apiErr.Detail)
	assert.NotErrorIs(t, err, storage.ErrReportNotFound)
}

func TestDeleteReport_NoContent(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodDelete, baseURL+"/reports/4/",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	assert.NoError(t, c.DeleteReport(context.Background(), 4))
}

func TestDo_NetworkFailureIsUnreachable(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/dropdown-options/",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := c.DropdownOptions(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "Make sure the backend is running at "+baseURL)
}

func TestAPIError_PlainBody(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/reports/1/",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	_, err := c.GetReport(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Detail)
	assert.Contains(t, apiErr.Error(), "Internal Server Error")
}
