package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennml/gonml/pkg/api"
	"github.com/opennml/gonml/pkg/events"
	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/metrics"
	"github.com/opennml/gonml/pkg/snapshot"
	"github.com/opennml/gonml/pkg/topology"
)

// TestCompleteTopologyWorkflow walks a full user journey against the HTTP
// API: build a two-switch topology, traverse it over GraphQL, validate it,
// export it, and snapshot it.
func TestCompleteTopologyWorkflow(t *testing.T) {
	bus := events.NewBus()
	defer bus.Shutdown()

	store := snapshot.NewStore(t.TempDir(), false)
	ns := topology.NewWithConfig(topology.Config{Bus: bus})
	server := api.NewServer(ns, api.Config{
		Version:   "e2e",
		Bus:       bus,
		Snapshots: store,
		Metrics:   metrics.NewRegistry(),
		Logger:    logging.NewNopLogger(),
	})

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()
	baseURL := ts.URL

	t.Log("Step 1: Creating switches...")
	sw1 := createObject(t, baseURL, "/nodes", map[string]any{"name": "sw1"})
	sw2 := createObject(t, baseURL, "/nodes", map[string]any{"name": "sw2"})
	t.Logf("  created %s and %s", sw1, sw2)

	t.Log("Step 2: Creating bidirectional ports...")
	bpA := createObject(t, baseURL, "/biports", map[string]any{
		"nodeId": sw1,
		"name":   "eth0",
	})
	bpB := createObject(t, baseURL, "/biports", map[string]any{
		"nodeId": sw2,
		"name":   "eth0",
	})

	t.Log("Step 3: Linking the switches...")
	bilink := createObject(t, baseURL, "/bilinks", map[string]any{
		"biportA": bpA,
		"biportB": bpB,
		"name":    "sw1-sw2",
	})
	t.Logf("  created bilink %s", bilink)

	t.Log("Step 4: Verifying namespace statistics...")
	stats := getJSON(t, baseURL, "/stats")
	assert.Equal(t, float64(2), stats["nodes"])
	assert.Equal(t, float64(4), stats["ports"])
	assert.Equal(t, float64(2), stats["links"])
	assert.Equal(t, float64(2), stats["bidirectional_ports"])
	assert.Equal(t, float64(1), stats["bidirectional_links"])

	t.Log("Step 5: Traversing the topology over GraphQL...")
	gqlResp := postJSON(t, baseURL, "/graphql", map[string]any{
		"query": `{ nodes { name inboundPorts { id } outboundPorts { id } } }`,
	})
	data, ok := gqlResp["data"].(map[string]any)
	require.True(t, ok, "GraphQL response should carry data")
	nodes, ok := data["nodes"].([]any)
	require.True(t, ok)
	assert.Len(t, nodes, 2)
	for _, raw := range nodes {
		node := raw.(map[string]any)
		assert.Len(t, node["inboundPorts"], 1, "node %v", node["name"])
		assert.Len(t, node["outboundPorts"], 1, "node %v", node["name"])
	}

	t.Log("Step 6: Validating structural constraints...")
	validation := getJSON(t, baseURL, "/validate")
	assert.Equal(t, true, validation["valid"])

	t.Log("Step 7: Exporting NML XML and DOT...")
	xmlBody := getBody(t, baseURL, "/export/nml")
	assert.Contains(t, xmlBody, "<Topology")
	assert.Contains(t, xmlBody, "http://schemas.ogf.org/nml/2013/05/base")
	dotBody := getBody(t, baseURL, "/export/dot?name=e2e")
	assert.True(t, strings.HasPrefix(dotBody, `graph "e2e"`), "DOT output: %q", dotBody)
	assert.Contains(t, dotBody, "--")

	t.Log("Step 8: Taking a snapshot and reloading it...")
	snap := postJSON(t, baseURL, "/snapshot", nil)
	require.NotEmpty(t, snap["path"])
	require.True(t, store.Exists())

	restored, err := store.Load(topology.Config{})
	require.NoError(t, err)
	restoredStats := restored.Stats()
	assert.Equal(t, uint64(2), restoredStats.Nodes)
	assert.Equal(t, uint64(1), restoredStats.BidirectionalLinks)

	t.Log("Step 9: Fetching a single node by ID...")
	node := getJSON(t, baseURL, "/nodes/"+url.PathEscape(sw1))
	assert.Equal(t, "sw1", node["name"])
}

// TestRejectionWorkflow exercises the error paths a client can hit.
func TestRejectionWorkflow(t *testing.T) {
	ns := topology.New()
	server := api.NewServer(ns, api.Config{
		Metrics: metrics.NewRegistry(),
		Logger:  logging.NewNopLogger(),
	})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()
	baseURL := ts.URL

	sw1 := createObject(t, baseURL, "/nodes", map[string]any{
		"id":   "urn:ogf:network:example:sw1",
		"name": "sw1",
	})

	t.Log("Duplicate IDs are rejected with 409...")
	resp := post(t, baseURL, "/nodes", map[string]any{
		"id":   sw1,
		"name": "sw1-again",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	t.Log("Missing names are rejected with 400...")
	resp = post(t, baseURL, "/nodes", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	t.Log("Self-links are rejected with 400...")
	bp := createObject(t, baseURL, "/biports", map[string]any{
		"nodeId": sw1,
		"name":   "eth0",
	})
	resp = post(t, baseURL, "/bilinks", map[string]any{
		"biportA": bp,
		"biportB": bp,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	t.Log("Unknown objects return 404...")
	httpResp, err := http.Get(baseURL + "/nodes/" + url.PathEscape("urn:ogf:network:example:nope"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, httpResp.StatusCode)
	httpResp.Body.Close()
}

func post(t *testing.T, baseURL, path string, payload map[string]any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	resp, err := http.Post(baseURL+path, "application/json", body)
	require.NoError(t, err)
	return resp
}

// createObject POSTs a creation request and returns the new object's id.
func createObject(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()
	resp := post(t, baseURL, path, payload)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode,
		"POST %s: %s", path, string(raw))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	id, ok := decoded["id"].(string)
	require.True(t, ok, "response should carry an id: %s", string(raw))
	return id
}

func postJSON(t *testing.T, baseURL, path string, payload map[string]any) map[string]any {
	t.Helper()
	resp := post(t, baseURL, path, payload)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Less(t, resp.StatusCode, 300, "POST %s: %s", path, string(raw))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func getJSON(t *testing.T, baseURL, path string) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(getBody(t, baseURL, path)), &decoded))
	return decoded
}

func getBody(t *testing.T, baseURL, path string) string {
	t.Helper()
	resp, err := http.Get(baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode,
		fmt.Sprintf("GET %s: %s", path, string(raw)))
	return string(raw)
}
