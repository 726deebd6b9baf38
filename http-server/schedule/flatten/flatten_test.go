package flatten

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/storage"
)

func post(body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Flatten(slog.Default()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule/flatten", strings.NewReader(body)))
	return rr
}

func TestFlatten(t *testing.T) {
	body := `{
		"slots": [
			{"id": 4, "type": "SETUP", "singleRow": true, "upVals": ["1.0"]},
			{"id": 2, "type": "LAST", "singleRow": false, "upVals": ["2.0"], "downVals": ["2.1"], "date": "2026-04-10"}
		],
		"session": {"operator": "ALEX", "machine_no": "M1", "date": "2026-04-09"}
	}`

	rr := post(body)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []storage.ScheduleEntry
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, 0, entries[0].SlotIndex)
	assert.Equal(t, "2026-04-09", entries[0].Date)
	assert.Equal(t, 1, entries[1].SlotIndex)
	assert.Equal(t, 0, entries[1].RowOrder)
	assert.Equal(t, 1, entries[2].RowOrder)
	assert.Equal(t, "2.1", entries[2].Values[0])
	assert.Equal(t, "2026-04-10", entries[2].Date)
	for _, e := range entries {
		assert.Equal(t, 1, e.Sr)
		assert.Equal(t, "ALEX", e.Operator)
	}
}

func TestFlatten_RejectsUnknownType(t *testing.T) {
	rr := post(`{"slots":[{"id":1,"type":"1HR","singleRow":true}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "1HR")
}
