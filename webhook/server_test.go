// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package webhook

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"

	"github.com/alDuncanson/handler/auth"
)

func postJSON(t *testing.T, handler http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestReceiveNotification(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	handler := server.Handler()

	rec := postJSON(t, handler, "/webhook",
		`{"taskId":"task-1","status":{"state":"completed"}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Status   string `json:"status"`
		Received bool   `json:"received"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || !resp.Received {
		t.Errorf("response = %+v", resp)
	}

	notifications := server.Store().List()
	if len(notifications) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(notifications))
	}
	if notifications[0].TaskID != "task-1" {
		t.Errorf("TaskID = %q, want task-1", notifications[0].TaskID)
	}
	if notifications[0].ReceivedAt.IsZero() {
		t.Error("ReceivedAt not set")
	}
}

func TestReceiveInvalidJSON(t *testing.T) {
	server := NewServer("127.0.0.1:0")

	rec := postJSON(t, server.Handler(), "/webhook", `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid JSON") {
		t.Errorf("body = %s, want Invalid JSON error", rec.Body)
	}
	if server.Store().Len() != 0 {
		t.Error("invalid payload was stored")
	}
}

func TestReceiveTokenCheck(t *testing.T) {
	server := NewServer("127.0.0.1:0", WithToken("expected"))
	handler := server.Handler()

	rec := postJSON(t, handler, "/webhook", `{"taskId":"t1"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", rec.Code)
	}

	rec = postJSON(t, handler, "/webhook", `{"taskId":"t1"}`,
		map[string]string{auth.NotificationTokenHeader: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with wrong token = %d, want 401", rec.Code)
	}

	rec = postJSON(t, handler, "/webhook", `{"taskId":"t1"}`,
		map[string]string{auth.NotificationTokenHeader: "expected"})
	if rec.Code != http.StatusOK {
		t.Errorf("status with matching token = %d, want 200", rec.Code)
	}
	if server.Store().Len() != 1 {
		t.Errorf("stored %d notifications, want 1", server.Store().Len())
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Webhook is active") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestListAndClear(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	handler := server.Handler()

	for i := range 3 {
		rec := postJSON(t, handler, "/webhook", fmt.Sprintf(`{"taskId":"task-%d"}`, i), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("post %d status = %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var listResp struct {
		Count         int            `json:"count"`
		Notifications []Notification `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listResp.Count != 3 || len(listResp.Notifications) != 3 {
		t.Fatalf("list = %+v, want 3 notifications", listResp)
	}
	if listResp.Notifications[0].TaskID != "task-0" {
		t.Errorf("first notification = %+v, want oldest first", listResp.Notifications[0])
	}

	rec = postJSON(t, handler, "/notifications/clear", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	if server.Store().Len() != 0 {
		t.Errorf("store holds %d after clear, want 0", server.Store().Len())
	}
}

func TestStoreEvictsOldest(t *testing.T) {
	store := NewStore(3)
	for i := range 5 {
		store.Add(Notification{TaskID: fmt.Sprintf("task-%d", i)})
	}

	got := store.List()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].TaskID != "task-2" || got[2].TaskID != "task-4" {
		t.Errorf("ring contents = %v, want task-2..task-4", got)
	}
}

func TestStoreDefaultCapacity(t *testing.T) {
	store := NewStore(0)
	for i := range DefaultCapacity + 10 {
		store.Add(Notification{TaskID: fmt.Sprintf("task-%d", i)})
	}
	if store.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", store.Len(), DefaultCapacity)
	}
}

func TestReceiveJWTVerification(t *testing.T) {
	verifier := auth.NewNotificationVerifier("shared-secret")
	server := NewServer("127.0.0.1:0", WithVerifier(verifier))

	rec := postJSON(t, server.Handler(), "/webhook", `{"taskId":"t1"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without JWT = %d, want 401", rec.Code)
	}
}
