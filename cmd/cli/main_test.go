package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	origURL := baseURL
	baseURL = server.URL
	t.Cleanup(func() { baseURL = origURL })
}

func TestCheckConsistencyPassed(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/suppliers/sup-1/consistency" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"consistent":true,"balance":"100","record_sum":"100","difference":"0"}`))
	})

	out := captureOutput(t, func() {
		checkConsistency("sup-1")
	})

	if !strings.Contains(out, "Consistency check PASSED") {
		t.Fatalf("expected pass message, got %q", out)
	}
	if !strings.Contains(out, "Balance: 100") {
		t.Fatalf("expected balance in output, got %q", out)
	}
}

func TestCheckConsistencyDiverged(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"consistent":false,"balance":"110","record_sum":"100","difference":"10"}`))
	})

	out := captureOutput(t, func() {
		checkConsistency("sup-1")
	})

	if !strings.Contains(out, "Consistency check FAILED") {
		t.Fatalf("expected failure message, got %q", out)
	}
	if !strings.Contains(out, "Difference: 10") {
		t.Fatalf("expected difference in output, got %q", out)
	}
}

func TestEnqueueRecalculate(t *testing.T) {
	var gotMethod, gotPath, gotActor string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotActor = r.Header.Get("X-Actor-Id")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"supplier_id":"sup-1","task":"ledger:recalc","task_id":"task-1","queue":"default"}`))
	})

	origActor := actorID
	actorID = "op-1"
	t.Cleanup(func() { actorID = origActor })

	out := captureOutput(t, func() {
		enqueue("sup-1", "recalculate")
	})

	if gotMethod != http.MethodPost || gotPath != "/api/v1/suppliers/sup-1/recalculate" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotActor != "op-1" {
		t.Errorf("expected actor header op-1, got %q", gotActor)
	}
	if !strings.Contains(out, "task-1") || !strings.Contains(out, "default") {
		t.Fatalf("expected task details in output, got %q", out)
	}
}

func TestShowSupplier(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"acme","balance":"150","payment_currency":"USDT"}`))
	})

	out := captureOutput(t, func() {
		showSupplier("sup-1")
	})

	if !strings.Contains(out, "Supplier: acme") {
		t.Fatalf("expected supplier name in output, got %q", out)
	}
	if !strings.Contains(out, "150 USDT") {
		t.Fatalf("expected balance in output, got %q", out)
	}
}
