package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/evcraddock/realty-site/internal/admin"
	"github.com/evcraddock/realty-site/internal/blog"
	"github.com/evcraddock/realty-site/internal/property"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

func TestListProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/property/all" {
			t.Errorf("path = %q, want /property/all", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer testkey" {
			t.Error("expected Bearer testkey")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]property.Record{{ID: 1, Title: "Loft", PriceValue: 250000}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	props, err := c.ListProperties(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("got %d props, want 1", len(props))
	}
	if props[0].Title != "Loft" || props[0].PriceValue != 250000 {
		t.Errorf("record = %+v", props[0])
	}
}

func TestNoTokenSendsNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		if _, err := w.Write([]byte("[]")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	for _, ts := range []TokenSource{nil, staticToken("")} {
		c := New(srv.URL, ts)
		if _, err := c.ListProperties(context.Background()); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
}

func TestCreateProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/property/add" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var req property.Record
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Title != "Beach House" {
			t.Errorf("title = %q", req.Title)
		}
		req.ID = 9
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(req); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	p, err := c.CreateProperty(context.Background(), property.Record{Title: "Beach House", Type: property.TypeHouse, Operation: property.OperationBuy})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 9 {
		t.Errorf("id = %d, want 9", p.ID)
	}
}

func TestCreatePropertyEmptyResponseKeepsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	p, err := c.CreateProperty(context.Background(), property.Record{Title: "Studio"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Title != "Studio" {
		t.Errorf("title = %q", p.Title)
	}
}

func TestUpdatePropertySendsOnlySetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/property/update/3" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(body) != `{"badge":"Promotion"}` {
			t.Errorf("body = %s", body)
		}
		if err := json.NewEncoder(w).Encode(property.Record{ID: 3, Badge: "Promotion"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	badge := property.BadgePromotion
	c := New(srv.URL, staticToken("testkey"))
	p, err := c.UpdateProperty(context.Background(), 3, property.Update{Badge: &badge})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Badge != "Promotion" {
		t.Errorf("badge = %q", p.Badge)
	}
}

func TestDeleteProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/property/delete/1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	if err := c.DeleteProperty(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestListPublishedPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/blog/posts/published" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewEncoder(w).Encode([]blog.Post{{ID: 1, Title: "Market update", Published: true}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	posts, err := c.ListPublishedPosts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Market update" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestGetPostNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(map[string]string{"detail": "Post not found"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetPost(context.Background(), 77)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err.Error() != "Post not found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users/" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var req admin.NewUser
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Password != "s3cretpass" {
			t.Errorf("password not sent")
		}
		if err := json.NewEncoder(w).Encode(admin.User{ID: 4, Email: req.Email, Role: req.Role, IsActive: true}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	u, err := c.CreateUser(context.Background(), admin.NewUser{Email: "ana@example.com", Password: "s3cretpass", Role: admin.RoleEditor})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 4 || !u.IsActive {
		t.Errorf("user = %+v", u)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if creds.Email != "admin@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewEncoder(w).Encode(Tokens{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	tok, err := c.Login(context.Background(), Credentials{Email: "admin@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.AccessToken != "acc" || tok.RefreshToken != "ref" {
		t.Errorf("tokens = %+v", tok)
	}

	_, err = c.Login(context.Background(), Credentials{Email: "nobody@example.com", Password: "pw"})
	var srvErr *ServerError
	if !errors.As(err, &srvErr) || srvErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 ServerError", err)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "db exploded"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	_, err := c.ListProperties(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "db exploded" {
		t.Errorf("error = %q", err.Error())
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable = false, want true")
	}
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("badkey"))
	_, err := c.ListProperties(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("error = %q", err.Error())
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("401 did not match ErrUnauthorized")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("401 matched ErrNotFound")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.ListProperties(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if netErr.Method != http.MethodGet {
		t.Errorf("method = %q", netErr.Method)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("network error matched ErrNotFound")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":"boom"}`, "boom"},
		{`{"message":"bad input"}`, "bad input"},
		{`{"detail":"Not authenticated"}`, "Not authenticated"},
		{`{"detail":[{"msg":"field required"}]}`, ""},
		{`not json`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		if got := errorMessage([]byte(tt.body)); got != tt.want {
			t.Errorf("errorMessage(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestImageHostUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "imgkey" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer func() { _ = f.Close() }()
		if hdr.Filename != "front.jpg" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != "jpegbytes" {
			t.Errorf("data = %q", data)
		}
		if _, err := w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/x/front.jpg"}}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	h, err := NewImageHost("imgkey")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	SetTestImageHostURL(h, srv.URL)

	u, err := h.Upload(context.Background(), "/tmp/photos/front.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if u != "https://i.ibb.co/x/front.jpg" {
		t.Errorf("url = %q", u)
	}
}

func TestNewImageHostRequiresKey(t *testing.T) {
	if _, err := NewImageHost(""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestImageHostErrorsHideKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL + "/upload"
	srv.Close()

	h, err := NewImageHost("SECRETKEY123")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	SetTestImageHostURL(h, deadURL)

	_, err = h.Upload(context.Background(), "front.jpg", strings.NewReader("jpegbytes"))
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "SECRETKEY123") {
		t.Errorf("api key in error: %q", err.Error())
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if !strings.HasPrefix(netErr.URL, deadURL) {
		t.Errorf("url = %q, want it to start with %q", netErr.URL, deadURL)
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://api/property/all", "http://api/property/all"},
		{"https://api.imgbb.com/1/upload?key=abc", "https://api.imgbb.com/1/upload?key=REDACTED"},
		{"http://api/x?key=abc&page=2", "http://api/x?key=REDACTED&page=2"},
		{"http://user:pw@api/x", "http://api/x"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got := redactURL(u); got != tt.want {
			t.Errorf("redactURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCreatePostOmitsUnsetTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			t.Fatalf("decode: %v", err)
		}
		for _, k := range []string{"created_at", "updated_at"} {
			if _, ok := fields[k]; ok {
				t.Errorf("request sent %s: %s", k, body)
			}
		}
		_, _ = w.Write([]byte(`{"id":9,"title":"Market update","content":"Prices are up.","created_at":"2026-10-01T12:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("testkey"))
	p, err := c.CreatePost(context.Background(), blog.Post{Title: "Market update", Content: "Prices are up."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created_at from the response was not decoded")
	}
}
