package itest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/Overland-East-Bay/trip-gateway/internal/adapters/httpapi"
	memclock "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/clock"
	memtripevents "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/tripevents"
	memtriprepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/triprepo"
	memusercache "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/usercache"
	memuserrepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/userrepo"
	mongo_testutil "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo/testutil"
	mongotriprepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo/triprepo"
	postgres_testutil "github.com/Overland-East-Bay/trip-gateway/internal/adapters/postgres/testutil"
	pguserrepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/postgres/userrepo"
	redisusercache "github.com/Overland-East-Bay/trip-gateway/internal/adapters/redis/usercache"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/trips"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/users"
	triprepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
	usercacheport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/usercache"
	userrepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

type backend string

const (
	backendMemory backend = "memory"
	backendLive   backend = "live"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "live":
		return []backend{backendLive}
	case "all":
		return []backend{backendMemory, backendLive}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|live|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	events  *memtripevents.Publisher
}

// newTestServer starts the full router over b. The live backend uses real
// Postgres and Mongo (skipped unless TEST_DATABASE_URL and TEST_MONGO_URI are
// set) with the Redis cache served by miniredis.
func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	events := memtripevents.NewPublisher("trips")

	var (
		userRepo userrepoport.Repository
		tripRepo triprepoport.Repository
		cache    usercacheport.Cache
	)

	switch b {
	case backendLive:
		pool := postgres_testutil.OpenMigratedPool(t)
		userRepo = pguserrepo.NewRepo(pool)
		tripRepo = mongotriprepo.NewRepo(mongo_testutil.OpenTripCollection(t))

		mr := miniredis.RunT(t)
		rc, err := redisusercache.NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
		if err != nil {
			t.Fatalf("redis NewClient: %v", err)
		}
		t.Cleanup(func() { _ = rc.Close() })
		cache = redisusercache.NewCache(rc)
	case backendMemory:
		userRepo = memuserrepo.NewRepo()
		tripRepo = memtriprepo.NewRepo()
		cache = memusercache.NewCache()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	usersSvc := users.NewService(userRepo, cache, nil)
	tripsSvc := trips.NewService(tripRepo, events, clk, nil)
	api := httpapi.NewHandler(httpapi.NewResolver(usersSvc, tripsSvc, nil))

	srv := httptest.NewServer(httpapi.NewRouter(api))
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		events:  events,
	}
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
	Extensions map[string]any `json:"extensions"`
}

func (s *testServer) graphql(t *testing.T, query string, vars map[string]any) graphqlResponse {
	t.Helper()

	b, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/graphql", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(out))
	}
	return mustUnmarshal[graphqlResponse](t, out)
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireNoErrors(t *testing.T, resp graphqlResponse) {
	t.Helper()
	if len(resp.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
}

func requireField[T any](t *testing.T, resp graphqlResponse, name string) T {
	t.Helper()
	raw, ok := resp.Data[name]
	if !ok {
		t.Fatalf("data.%s missing; errors=%+v", name, resp.Errors)
	}
	return mustUnmarshal[T](t, raw)
}

func requireNull(t *testing.T, resp graphqlResponse, name string) {
	t.Helper()
	if got := string(resp.Data[name]); got != "null" {
		t.Fatalf("data.%s=%s, want null", name, got)
	}
}
