package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/seed"
)

// --- test DB helper (pure-Go sqlite, seeded) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.Open(repo.Options{
		SQLitePath: filepath.Join(t.TempDir(), "router.db"),
		LogLevel:   "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := seed.Run(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api",
		RateRPS:     1000,
		RateBurst:   1000,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), cfg)
	return r
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

type msgBody struct {
	Msg string `json:"msg"`
}

func expectMsg(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d (body %s)", w.Code, status, w.Body.String())
	}
	if got := decode[msgBody](t, w).Msg; got != msg {
		t.Fatalf("msg = %q; want %q", got, msg)
	}
}

// --- infrastructure ---

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := call(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	w = call(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// Unknown paths and unsupported methods share the 404 fallback.
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/api/not-a-route"},
		{http.MethodPost, "/health"},
		{http.MethodDelete, "/api/topics"},
		{http.MethodGet, "/api/"},
		{http.MethodGet, "/api/articles/"},
		{http.MethodPost, "/api/articles/1/comments/"},
	} {
		expectMsg(t, call(r, tc.method, tc.path, ""), http.StatusNotFound, "Route not found")
	}
}

// Preflight is answered by the CORS layer before routing, whatever the path.
func TestRegisterRoutes_PreflightAnsweredBeforeRouting(t *testing.T) {
	r := newTestRouter(t, testConfig())

	for _, path := range []string{"/api/articles", "/api/not-a-route"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("OPTIONS %s = %d; want 204", path, w.Code)
		}
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	r := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRegisterRoutes_RateLimitExemptsHealth(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS, cfg.RateBurst = 0.001, 1
	r := newTestRouter(t, cfg)

	if w := call(r, http.MethodGet, "/api/topics", ""); w.Code != http.StatusOK {
		t.Fatalf("first request = %d", w.Code)
	}
	expectMsg(t, call(r, http.MethodGet, "/api/topics", ""), http.StatusTooManyRequests, "Too Many Requests")

	for i := 0; i < 3; i++ {
		if w := call(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
			t.Fatalf("/health should be exempt, got %d", w.Code)
		}
	}
}

func TestRegisterRoutes_Gzip(t *testing.T) {
	r := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %d %q", w.Code, w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, _ := io.ReadAll(zr)
	if !bytes.Contains(raw, []byte(`"articles"`)) {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(t, cfg)
	if w := call(r, http.MethodGet, "/swagger/doc.json", ""); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off by default, got %d", w.Code)
	}

	cfg.SwaggerEnabled = true
	r = newTestRouter(t, cfg)
	w := call(r, http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/articles/{article_id}/comments") {
		t.Fatalf("GET /swagger/doc.json = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"basePath": "/api"`) {
		t.Fatalf("basePath not applied")
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := call(r, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses otel + ratelimit + security headers.
func TestPipeline_Smoke(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	r := newTestRouter(t, cfg)

	w := call(r, http.MethodGet, "/api/topics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /api/topics = %d", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
}

func Test_articleRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := articleRepoShim{}
	ctx := context.Background()

	all, err := shim.ListArticles(ctx, db)
	if err != nil || len(all) != 12 {
		t.Fatalf("ListArticles = %d, %v", len(all), err)
	}
	a, err := shim.GetArticle(ctx, db, 1)
	if err != nil || a.ArticleID != 1 {
		t.Fatalf("GetArticle = %+v, %v", a, err)
	}
	a, err = shim.IncrementVotes(ctx, db, 1, 5)
	if err != nil || a.Votes != 105 {
		t.Fatalf("IncrementVotes = %+v, %v", a, err)
	}
}

// --- API behavior against the seeded dataset ---

type apiArticle struct {
	ArticleID    int       `json:"article_id"`
	Title        string    `json:"title"`
	Topic        string    `json:"topic"`
	Author       string    `json:"author"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	Votes        int       `json:"votes"`
	CommentCount int       `json:"comment_count"`
}

type apiComment struct {
	CommentID int       `json:"comment_id"`
	Body      string    `json:"body"`
	ArticleID int       `json:"article_id"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

func TestAPI_Topics(t *testing.T) {
	r := newTestRouter(t, testConfig())
	w := call(r, http.MethodGet, "/api/topics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := decode[struct {
		Topics []struct {
			Slug        string `json:"slug"`
			Description string `json:"description"`
		} `json:"topics"`
	}](t, w)
	if len(body.Topics) != 3 {
		t.Fatalf("topics = %d; want 3", len(body.Topics))
	}
	for _, tp := range body.Topics {
		if tp.Slug == "" || tp.Description == "" {
			t.Fatalf("incomplete topic: %+v", tp)
		}
	}
}

func TestAPI_Articles_SortedWithCounts(t *testing.T) {
	r := newTestRouter(t, testConfig())
	w := call(r, http.MethodGet, "/api/articles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	arts := decode[struct {
		Articles []apiArticle `json:"articles"`
	}](t, w).Articles
	if len(arts) != 12 {
		t.Fatalf("articles = %d; want 12", len(arts))
	}
	if arts[0].ArticleID != 3 {
		t.Fatalf("newest article = %d; want 3", arts[0].ArticleID)
	}
	for i := 1; i < len(arts); i++ {
		if arts[i].CreatedAt.After(arts[i-1].CreatedAt) {
			t.Fatalf("not sorted by created_at desc at %d", i)
		}
	}
	for _, a := range arts {
		if a.ArticleID == 1 && a.CommentCount != 11 {
			t.Fatalf("article 1 comment_count = %d; want 11", a.CommentCount)
		}
	}
}

func TestAPI_ArticleByID(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := call(r, http.MethodGet, "/api/articles/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	a := decode[struct {
		Article apiArticle `json:"article"`
	}](t, w).Article
	want := apiArticle{
		ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch",
		Author: "butter_bridge", Body: "I find this existence challenging",
		CreatedAt: time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC), Votes: 100, CommentCount: 11,
	}
	if !a.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %v; want %v", a.CreatedAt, want.CreatedAt)
	}
	a.CreatedAt = want.CreatedAt
	if a != want {
		t.Fatalf("article = %+v; want %+v", a, want)
	}

	expectMsg(t, call(r, http.MethodGet, "/api/articles/1e4e", ""), http.StatusBadRequest, "Bad Request")
	expectMsg(t, call(r, http.MethodGet, "/api/articles/1234523423432423", ""), http.StatusBadRequest, "Out Of Range For Type Integer")
	expectMsg(t, call(r, http.MethodGet, "/api/articles/12345", ""), http.StatusNotFound, "Article Not Found")
}

func TestAPI_PatchArticleVotes(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := call(r, http.MethodPatch, "/api/articles/1", `{"inc_votes": -100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if a := decode[struct {
		Article apiArticle `json:"article"`
	}](t, w).Article; a.Votes != 0 || a.CommentCount != 11 {
		t.Fatalf("unexpected article after vote: %+v", a)
	}

	expectMsg(t, call(r, http.MethodPatch, "/api/articles/1", `{"inc_votes":"x"}`), http.StatusBadRequest, "Bad Request")
	expectMsg(t, call(r, http.MethodPatch, "/api/articles/999", `{"inc_votes":1}`), http.StatusNotFound, "Article Not Found")
}

func TestAPI_PatchArticleVotes_IntegerRange(t *testing.T) {
	r := newTestRouter(t, testConfig())

	// Increment itself does not fit a 32-bit integer.
	expectMsg(t, call(r, http.MethodPatch, "/api/articles/1", `{"inc_votes": 9223372036854775807}`),
		http.StatusBadRequest, "Out of range for type integer")
	expectMsg(t, call(r, http.MethodPatch, "/api/articles/2", `{"inc_votes": 3000000000}`),
		http.StatusBadRequest, "Out of range for type integer")

	// Increment fits but the resulting total would not.
	w := call(r, http.MethodPatch, "/api/articles/2", `{"inc_votes": 2147483647}`)
	if w.Code != http.StatusOK {
		t.Fatalf("max increment: %d %s", w.Code, w.Body.String())
	}
	expectMsg(t, call(r, http.MethodPatch, "/api/articles/2", `{"inc_votes": 1}`),
		http.StatusBadRequest, "Out of range for type integer")

	w = call(r, http.MethodGet, "/api/articles/2", "")
	if a := decode[struct {
		Article apiArticle `json:"article"`
	}](t, w).Article; a.Votes != 2147483647 {
		t.Fatalf("votes changed by rejected update: %d", a.Votes)
	}
	w = call(r, http.MethodGet, "/api/articles/1", "")
	if a := decode[struct {
		Article apiArticle `json:"article"`
	}](t, w).Article; a.Votes != 100 {
		t.Fatalf("article 1 votes = %d; want 100", a.Votes)
	}
	if w = call(r, http.MethodGet, "/api/articles", ""); w.Code != http.StatusOK {
		t.Fatalf("list after rejected updates: %d %s", w.Code, w.Body.String())
	}
}

func TestAPI_ArticleComments(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := call(r, http.MethodGet, "/api/articles/1/comments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	cs := decode[struct {
		Comments []apiComment `json:"comments"`
	}](t, w).Comments
	if len(cs) != 11 {
		t.Fatalf("comments = %d; want 11", len(cs))
	}
	for i, c := range cs {
		if c.ArticleID != 1 || c.CommentID == 0 || c.Author == "" || c.Body == "" {
			t.Fatalf("incomplete comment: %+v", c)
		}
		if i > 0 && c.CreatedAt.After(cs[i-1].CreatedAt) {
			t.Fatalf("comments not newest first at %d", i)
		}
	}

	// Existing article without comments: empty array, not null.
	w = call(r, http.MethodGet, "/api/articles/2/comments", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"comments":[]`) {
		t.Fatalf("expected empty array, got %d %s", w.Code, w.Body.String())
	}

	expectMsg(t, call(r, http.MethodGet, "/api/articles/54etr4e/comments", ""), http.StatusBadRequest, "Bad Request")
	expectMsg(t, call(r, http.MethodGet, "/api/articles/1234523423432423/comments", ""), http.StatusBadRequest, "Out Of Range For Type Integer")
	expectMsg(t, call(r, http.MethodGet, "/api/articles/12345/comments", ""), http.StatusNotFound, "Article Not Found")
}

func TestAPI_PostComment(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := call(r, http.MethodPost, "/api/articles/2/comments", `{"username":"butter_bridge","body":"test body"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	c := decode[struct {
		Comment apiComment `json:"comment"`
	}](t, w).Comment
	if c.CommentID != 19 || c.ArticleID != 2 || c.Author != "butter_bridge" || c.Body != "test body" || c.Votes != 0 {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if time.Since(c.CreatedAt) > time.Minute {
		t.Fatalf("created_at not current: %v", c.CreatedAt)
	}

	// The new comment is visible and counted.
	w = call(r, http.MethodGet, "/api/articles/2", "")
	if a := decode[struct {
		Article apiArticle `json:"article"`
	}](t, w).Article; a.CommentCount != 1 {
		t.Fatalf("comment_count = %d; want 1", a.CommentCount)
	}

	expectMsg(t, call(r, http.MethodPost, "/api/articles/2/comments", `{"username":"butter_bridge"}`), http.StatusBadRequest, "Not Null Violation")
	expectMsg(t, call(r, http.MethodPost, "/api/articles/2/comments", `{"body":"anonymous"}`), http.StatusBadRequest, "Not Null Violation")
	expectMsg(t, call(r, http.MethodPost, "/api/articles/2/comments", `{"username":"ghost","body":"boo"}`), http.StatusNotFound, "User Not Found")
	expectMsg(t, call(r, http.MethodPost, "/api/articles/12345/comments", `{"username":"butter_bridge","body":"x"}`), http.StatusNotFound, "Article Not Found")
	expectMsg(t, call(r, http.MethodPost, "/api/articles/abc/comments", `{"username":"butter_bridge","body":"x"}`), http.StatusBadRequest, "Bad Request")
	expectMsg(t, call(r, http.MethodPost, "/api/articles/2/comments", `{"username":`), http.StatusBadRequest, "Bad Request")
}

func TestAPI_Users(t *testing.T) {
	r := newTestRouter(t, testConfig())
	w := call(r, http.MethodGet, "/api/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	users := decode[struct {
		Users []struct {
			Username  string `json:"username"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"users"`
	}](t, w).Users
	if len(users) != 4 {
		t.Fatalf("users = %d; want 4", len(users))
	}
	for _, u := range users {
		if u.Username == "" || u.Name == "" || u.AvatarURL == "" {
			t.Fatalf("incomplete user: %+v", u)
		}
	}
}

func TestAPI_EndpointCatalogue(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	r := newTestRouter(t, cfg)

	w := call(r, http.MethodGet, "/api/v2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	eps := decode[struct {
		Endpoints map[string]json.RawMessage `json:"endpoints"`
	}](t, w).Endpoints
	if _, ok := eps["GET /api/v2/articles/:article_id/comments"]; !ok {
		t.Fatalf("catalogue not rebased: %v", eps)
	}
	if w := call(r, http.MethodGet, "/api/v2/topics", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /api/v2/topics = %d", w.Code)
	}
}
