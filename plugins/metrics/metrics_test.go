package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/plugin/plugintest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountEvents(t *testing.T) {
	api := plugintest.New()
	m := New("")
	require.NoError(t, m.Initialize(api))

	api.DispatchEvent(event.TypeInputReceived, event.InputReceivedData{Token: 'k'})
	api.DispatchEvent(event.TypeInputReceived, event.InputReceivedData{Token: 'h'})
	api.DispatchEvent(event.TypeOperationApplied, event.OperationData{IsEdit: true})
	api.DispatchEvent(event.TypeOperationApplied, event.OperationData{IsEdit: false})
	api.DispatchEvent(event.TypeOperationApplied, event.OperationData{IsEdit: true})
	api.DispatchEvent(event.TypeEditRecorded, event.EditRecordedData{Node: 1, Parent: 0, Nodes: 2})
	api.DispatchEvent(event.TypeOperationRejected, event.OperationRejectedData{Err: errors.New("no")})
	api.DispatchEvent(event.TypeUndo, event.HistoryMovedData{From: 1, To: 0})
	api.DispatchEvent(event.TypeRedo, event.HistoryMovedData{From: 0, To: 1})
	api.DispatchEvent(event.TypeModeChanged, event.ModeChangedData{From: "NORMAL", To: "INSERT"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inputs))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.nodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.undos))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.redos))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modes.WithLabelValues("INSERT")))

	assert.Empty(t, m.ListenAddr())
	assert.NoError(t, m.Shutdown())
}

func TestMetricsRouter(t *testing.T) {
	m := New("")
	m.undos.Inc()

	srv := httptest.NewServer(m.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "med_undo_total 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsServe(t *testing.T) {
	api := plugintest.New()
	m := New("127.0.0.1:0")
	require.NoError(t, m.Initialize(api))

	addr := m.ListenAddr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, m.Shutdown())
	assert.Empty(t, m.ListenAddr())
}

func TestMetricsListenError(t *testing.T) {
	m := New("not-an-address")
	assert.Error(t, m.Initialize(plugintest.New()))
}
