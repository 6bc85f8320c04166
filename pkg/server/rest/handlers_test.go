package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"routekit/pkg/datastructure"
	"routekit/pkg/routeplanner"
	"routekit/pkg/scorer"
	"routekit/pkg/server/rest/service"
	"routekit/pkg/snap"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	g := datastructure.NewGraph()
	a := g.AddNode(-7.5500, 110.8000)
	b := g.AddNode(-7.5510, 110.8010)
	c := g.AddNode(-7.5520, 110.8020)
	require.NoError(t, g.AddBidirectionalEdge(a, b, 150, 30, "residential", 0))
	require.NoError(t, g.AddBidirectionalEdge(b, c, 170, 30, "residential", 0))

	closures := scorer.NewClosureStore()
	chain := scorer.NewChain(scorer.AggregationSum, scorer.NewDistanceScorer(), scorer.NewClosureScorer(closures))
	svc := service.NewNavigationService(g,
		routeplanner.NewRoutePlanner(0, chain),
		snap.NewNodeSnapper(g, 500),
		closures, 7)

	r := chi.NewRouter()
	NavigationRouter(r, svc)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	bb, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bb))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouteByNodeHandler(t *testing.T) {
	r := newTestRouter(t)

	start, goal := int32(0), int32(2)
	rec := postJSON(t, r, "/api/navigation/route-by-node", RouteByNodeRequest{StartID: &start, GoalID: &goal})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int32{0, 1, 2}, resp.NodeIDs)
	assert.Equal(t, 320.0, resp.TotalCost)
	assert.NotEmpty(t, resp.Polyline)
}

func TestRouteByNodeHandlerInvalidIndex(t *testing.T) {
	r := newTestRouter(t)

	start, goal := int32(0), int32(99)
	rec := postJSON(t, r, "/api/navigation/route-by-node", RouteByNodeRequest{StartID: &start, GoalID: &goal})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteHandlerSnapTooFar(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/navigation/route", RouteRequest{
		SrcLat: 52.5200, SrcLon: 13.4050,
		DstLat: -7.5520, DstLon: 110.8020,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClosureHandlerBlocksRoute(t *testing.T) {
	r := newTestRouter(t)

	// edges 2/3 are the b<->c pair, closing both cuts the graph
	for _, id := range []int32{2, 3} {
		edgeID := id
		rec := postJSON(t, r, "/api/navigation/closures", ClosureRequest{EdgeID: &edgeID, Action: "close"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	start, goal := int32(0), int32(2)
	rec := postJSON(t, r, "/api/navigation/route-by-node", RouteByNodeRequest{StartID: &start, GoalID: &goal})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/navigation/closures", nil)
	listRec := httptest.NewRecorder()
	r.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)

	var closures ClosureResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &closures))
	assert.Len(t, closures.ClosedEdges, 2)
}
