package e2e_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

// TestDirectoryFlow exercises the full lifecycle against a running instance:
// register, search the listing, resolve the edit link, mutate, and read the
// detail view.
func TestDirectoryFlow(t *testing.T) {
	baseURL := getBaseURL(t)
	client := &http.Client{Timeout: 15 * time.Second}

	contact := fmt.Sprintf("99%d", time.Now().UnixNano()%100000000)
	name := fmt.Sprintf("E2E Tester %d", time.Now().UnixNano()%100000)

	// Register without photos
	form := url.Values{}
	form.Set("name", name)
	form.Set("dob", "1995-03-10")
	form.Set("place", "Pune")
	form.Set("occupation", "Teacher")
	form.Set("contact_number", contact)

	resp, err := client.Post(baseURL+"/v1/profiles",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Registration request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created struct {
		ID        string `json:"id"`
		EditToken string `json:"edit_token"`
		EditLink  string `json:"edit_link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode registration response: %v", err)
	}
	if created.EditToken == "" || created.EditToken == created.ID {
		t.Fatalf("Expected a token distinct from the public id, got token=%q id=%q",
			created.EditToken, created.ID)
	}
	if !strings.Contains(created.EditLink, "/edit/"+created.EditToken) {
		t.Errorf("Edit link %q does not embed the token path", created.EditLink)
	}

	// A fabricated token is denied
	resp, err = client.Get(baseURL + "/v1/edit/00000000000000000000000000000000")
	if err != nil {
		t.Fatalf("Edit resolve request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for fabricated token, got %d", resp.StatusCode)
	}

	// The real token resolves to an editable session
	resp, err = client.Get(baseURL + "/v1/edit/" + created.EditToken)
	if err != nil {
		t.Fatalf("Edit resolve request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for valid token, got %d", resp.StatusCode)
	}

	// Mutate the occupation through the token
	form.Set("occupation", "Principal")
	req, err := http.NewRequest(http.MethodPut,
		baseURL+"/v1/edit/"+created.EditToken, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to build edit request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("Edit request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for edit, got %d", resp.StatusCode)
	}

	// The detail view reflects the mutation
	resp, err = client.Get(baseURL + "/v1/profiles/" + created.ID)
	if err != nil {
		t.Fatalf("Detail request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for detail, got %d", resp.StatusCode)
	}

	var detail map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("Failed to decode detail response: %v", err)
	}
	if detail["occupation"] != "Principal" {
		t.Errorf("Expected updated occupation, got %v", detail["occupation"])
	}
	if _, present := detail["edit_token"]; present {
		t.Error("Detail view must never expose the edit token")
	}

	// Searching by place finds the record
	resp, err = client.Get(baseURL + "/v1/profiles?search=pune")
	if err != nil {
		t.Fatalf("Search request failed: %v", err)
	}
	defer resp.Body.Close()

	var listing struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("Failed to decode listing response: %v", err)
	}
	found := false
	for _, entry := range listing.Data {
		if entry["id"] == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("Search by place did not return the registered profile")
	}
}
