package hazardlist

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordInsertsAndRemoves(t *testing.T) {
	reg := prometheus.NewRegistry()
	d, err := NewDomain(WithMetrics(reg))
	require.NoError(t, err)
	h, err := d.Register()
	require.NoError(t, err)
	l, err := NewList[string](d, WithListName("probe"))
	require.NoError(t, err)

	require.NoError(t, l.InsertHead(h, "A"))
	require.NoError(t, l.Remove(h, "A", eqString))

	families, err := reg.Gather()
	require.NoError(t, err)

	var insertsTotal, removesTotal float64
	for _, mf := range families {
		switch mf.GetName() {
		case "hazardlist_list_inserts_total":
			insertsTotal = sumCounterValues(mf)
		case "hazardlist_list_removes_total":
			removesTotal = sumCounterValues(mf)
		}
	}

	require.Equal(t, float64(1), insertsTotal)
	require.Equal(t, float64(1), removesTotal)
}

func sumCounterValues(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}
