package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClientAppliesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, NewBearerAuthorizer("secret"))
	var body struct {
		OK bool `json:"ok"`
	}
	if err := client.GetJSON(context.Background(), "/ping", nil, &body); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
	if !body.OK {
		t.Error("response not decoded")
	}
}

func TestClientMapsNonSuccessToRemoteError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"errors":["no such repo"]}`, wantStatus: 404},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "bad token", wantStatus: 401},
		{name: "server error", status: http.StatusInternalServerError, body: "", wantStatus: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			err := client.GetJSON(context.Background(), "/thing", nil, nil)
			var remoteErr *RemoteError
			if !errors.As(err, &remoteErr) {
				t.Fatalf("got error %v, want *RemoteError", err)
			}
			if remoteErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", remoteErr.StatusCode, tt.wantStatus)
			}
			if remoteErr.Body != tt.body {
				t.Errorf("body = %q, want %q", remoteErr.Body, tt.body)
			}
			if remoteErr.URL == "" {
				t.Error("URL not captured")
			}
		})
	}
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", nil)
	if err := client.GetJSON(context.Background(), "/api/x", nil, nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotPath != "/api/x" {
		t.Errorf("path = %q, want %q", gotPath, "/api/x")
	}
}

func TestClientEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("deep", "1")
	query.Set("listFolders", "0")
	client := NewClient(server.URL, nil)
	if err := client.GetJSON(context.Background(), "/api/x", query, nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotQuery.Get("deep") != "1" || gotQuery.Get("listFolders") != "0" {
		t.Errorf("query = %v", gotQuery)
	}
}
