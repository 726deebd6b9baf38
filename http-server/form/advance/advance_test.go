package advance

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Advance(slog.Default()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rr
}

func TestAdvance_RefusesIncompleteHeader(t *testing.T) {
	rr := post("/api/form/advance", `{"step":"report","header":{"part_name":"BRACKET"}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp StepResponse
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "report", resp.Step)
	assert.Contains(t, resp.Reason, "part_number")
	assert.NotContains(t, resp.Reason, "part_name")
}

func TestAdvance_MovesToInspection(t *testing.T) {
	body := `{"step":"report","header":{"part_name":"BRACKET","part_number":"P-1","operation_name":"BLANKING","customer_name":"FIG"}}`

	rr := post("/api/form/advance", body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"step":"inspection"`)
}

func TestAdvance_Back(t *testing.T) {
	rr := post("/api/form/advance?direction=back", `{"step":"schedule"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"step":"inspection"`)

	rr = post("/api/form/advance?direction=back", `{"step":"report"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAdvance_UnknownStep(t *testing.T) {
	rr := post("/api/form/advance", `{"step":"review"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
