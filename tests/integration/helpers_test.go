//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
}

// doJSON sends payload (nil for no body) and decodes the JSON response.
func doJSON(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func expectEnvelope(t *testing.T, status int, body map[string]interface{}, want int, message string) {
	t.Helper()

	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, body)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if body["error"] != float64(want) {
		t.Fatalf("expected error=%d, got %v", want, body["error"])
	}
	if body["message"] != message {
		t.Fatalf("expected message %q, got %v", message, body["message"])
	}
}

// createQuestion inserts a question and returns its id.
func createQuestion(t *testing.T, text, answer string, categoryID, difficulty int) int64 {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL()+"/questions", map[string]interface{}{
		"question":   text,
		"answer":     answer,
		"category":   categoryID,
		"difficulty": difficulty,
	})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("create question failed: %d %v", status, body)
	}
	created, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("created id missing: %v", body)
	}
	return int64(created)
}
