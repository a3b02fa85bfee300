package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	"tle_zone_assist/internal/assist"
	"tle_zone_assist/internal/domain/model"
)

type requestLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, r.Method+" "+r.URL.Path)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

func newAPIServer(t *testing.T, reqs *requestLog) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/submissions/problem/p1/latest", func(w http.ResponseWriter, r *http.Request) {
		reqs.add(r)
		_ = json.NewEncoder(w).Encode(model.Submission{ID: "s1", Status: model.StatusAccepted})
	})
	mux.HandleFunc("/api/v1/ai/review", func(w http.ResponseWriter, r *http.Request) {
		reqs.add(r)
		_ = json.NewEncoder(w).Encode(model.ReviewResponse{Success: true, Review: "fine"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRequestReviewWithoutEntitlementMakesNoCalls(t *testing.T) {
	for _, role := range []model.Role{model.RoleFree, assist.RoleAbsent} {
		t.Run(string(role), func(t *testing.T) {
			reqs := &requestLog{}
			client := assist.NewHTTPClient(newAPIServer(t, reqs).URL, "tok", time.Second)

			var notices []assist.Notice
			session := assist.NewSession(assist.Options{
				Service:  client,
				Notifier: assist.NotifierFunc(func(n assist.Notice) { notices = append(notices, n) }),
				Role:     func() model.Role { return role },
			})
			defer session.Close()

			requestReview(context.Background(), client, session, "p1")

			if got := reqs.all(); len(got) != 0 {
				t.Fatalf("requests = %q, want none", got)
			}
			if len(notices) != 1 || notices[0].Message != assist.MsgUpgradeReview {
				t.Fatalf("notices = %+v, want the upgrade notice", notices)
			}
		})
	}
}

func TestRequestReviewLoadsLatestSubmission(t *testing.T) {
	reqs := &requestLog{}
	client := assist.NewHTTPClient(newAPIServer(t, reqs).URL, "tok", time.Second)
	session := assist.NewSession(assist.Options{
		Service: client,
		Role:    func() model.Role { return model.RolePro },
	})
	defer session.Close()
	session.SetCode("print(1)")

	requestReview(context.Background(), client, session, "p1")

	want := []string{"GET /api/v1/submissions/problem/p1/latest", "POST /api/v1/ai/review"}
	got := reqs.all()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("requests = %q, want %q", got, want)
	}
	if session.LastReview() != "fine" {
		t.Fatalf("review = %q", session.LastReview())
	}
}
