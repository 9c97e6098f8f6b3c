package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/articles/:article_id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"article": gin.H{"article_id": c.Param("article_id")}})
	})
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	const route = "/api/articles/:article_id"
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", route, "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))

	for _, p := range []string{"/api/articles/1", "/api/articles/2", "/api/nope/1", "/api/nope/2", "/api/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	// Both ids share the pattern label.
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", route, "200")); got != baseOK+2 {
		t.Fatalf("requests{%s,200} = %v; want %v", route, got, baseOK+2)
	}
	// Random paths collapse into one series.
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != base404+2 {
		t.Fatalf("requests{unmatched,404} = %v; want %v", got, base404+2)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("inflight = %v; want 0", inFlight)
	}
	if n := testutil.CollectAndCount(httpRespSize); n == 0 {
		t.Fatalf("response size histogram has no series")
	}
}

func TestObserveError_CountsByKindStatusAndCode(t *testing.T) {
	base := testutil.ToFloat64(apiErrors.WithLabelValues("validation", "400", "23502"))
	baseApp := testutil.ToFloat64(apiErrors.WithLabelValues("notFound", "404", ""))

	ObserveError("validation", http.StatusBadRequest, "23502")
	ObserveError("validation", http.StatusBadRequest, "23502")
	ObserveError("notFound", http.StatusNotFound, "")

	if got := testutil.ToFloat64(apiErrors.WithLabelValues("validation", "400", "23502")); got != base+2 {
		t.Fatalf("api_errors_total{validation,400,23502} = %v; want %v", got, base+2)
	}
	if got := testutil.ToFloat64(apiErrors.WithLabelValues("notFound", "404", "")); got != baseApp+1 {
		t.Fatalf("api_errors_total{notFound,404,\"\"} = %v; want %v", got, baseApp+1)
	}
}
