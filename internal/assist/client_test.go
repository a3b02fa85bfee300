package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"tle_zone_assist/internal/domain/model"
)

func TestHTTPClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody model.AssistanceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/ai/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(model.CompletionResponse{Success: true, Completion: " pass"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "tok", 0)
	resp, err := c.Complete(context.Background(), model.AssistanceRequest{Code: "def f():", Language: model.LanguagePython})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !resp.Success || resp.Completion != " pass" {
		t.Fatalf("resp = %+v", resp)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotBody.Code != "def f():" || gotBody.Language != model.LanguagePython {
		t.Fatalf("body = %+v", gotBody)
	}
}

func TestHTTPClientDeniedIsRecognised(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": model.NotEntitledMessage})
	}))
	defer srv.Close()

	f := NewFetcher(NewHTTPClient(srv.URL, "tok", 0))
	res, id := f.Fetch(context.Background(), "x", model.LanguageGo)
	if !res.Denied || res.Success {
		t.Fatalf("result = %+v, want denied", res)
	}
	if !f.IsLatest(id) {
		t.Fatal("only request is not the latest")
	}
}

func TestHTTPClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "", 0).Review(context.Background(), model.ReviewRequest{SubmissionID: "s"})
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusInternalServerError || se.Message != "boom" {
		t.Fatalf("err = %+v", se)
	}
	if isNotEntitled(err) {
		t.Fatal("server error treated as denial")
	}
}

func TestHTTPClientCurrentUserAndLatestSubmission(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"u1","username":"ada","profile":{"role":"PRO"}}}`))
	})
	mux.HandleFunc("/api/v1/submissions/problem/p1/latest", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Submission{ID: "s1", Status: model.StatusAccepted})
	})
	mux.HandleFunc("/api/v1/submissions/problem/p2/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"resource not found"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := NewHTTPClient(srv.URL, "tok", 0)

	u, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if LookupRole(u) != model.RolePro {
		t.Fatalf("role = %q", LookupRole(u))
	}

	sub, err := c.LatestSubmission(context.Background(), "p1")
	if err != nil || sub == nil || !sub.Accepted() {
		t.Fatalf("LatestSubmission(p1) = %+v, %v", sub, err)
	}
	sub, err = c.LatestSubmission(context.Background(), "p2")
	if err != nil || sub != nil {
		t.Fatalf("LatestSubmission(p2) = %+v, %v, want nil, nil", sub, err)
	}
}
