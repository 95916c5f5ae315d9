package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const rmId = "rm-smoke"

var baseURL = envOr("SMOKE_BASE_URL", "http://localhost:3000/api")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (int, map[string]interface{}, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	out := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return resp.StatusCode, nil, fmt.Errorf("decode %s: %w", string(raw), err)
		}
	}
	return resp.StatusCode, out, nil
}

// step runs one call and exits on an unexpected status.
func step(title, method, path string, body interface{}, wantStatus int) map[string]interface{} {
	color.Yellow("\n%s", title)
	status, out, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if status != wantStatus {
		color.Red("Status %d, want %d", status, wantStatus)
		prettyPrint(out)
		os.Exit(1)
	}
	color.Green("Status: %d", status)
	prettyPrint(out)
	return out
}

func idOf(obj map[string]interface{}, key string) string {
	inner, _ := obj[key].(map[string]interface{})
	id, _ := inner["id"].(string)
	return id
}

func main() {
	color.Cyan("🚀 Review pipeline smoke run against %s\n", baseURL)

	created := step("1. Create customer", "POST", "/customers", map[string]interface{}{
		"fullName":      "Asha Verma",
		"primaryMobile": "9876543210",
	}, http.StatusOK)
	customerId := idOf(created, "customer")

	extraction := step("2. Ingest extraction", "POST", "/customers/"+customerId+"/extractions", map[string]interface{}{
		"proposal": map[string]interface{}{
			"fieldEdits": []map[string]interface{}{
				{"id": "f1", "fieldKey": "emailPrimary", "proposedValue": "Asha@Example.com", "confidence": "high"},
				{"id": "f2", "fieldKey": "occupation", "proposedValue": "Architect", "confidence": "medium"},
			},
			"additionalData": []map[string]interface{}{
				{"id": "a1", "key": "petName", "value": "Bruno"},
			},
			"interests": []map[string]interface{}{
				{"id": "i1", "category": "personal", "label": "Golf"},
				{"id": "i2", "category": "financial", "label": "Tax saving"},
			},
			"note": map[string]interface{}{"id": "n1", "content": "Prefers evening calls."},
		},
	}, http.StatusCreated)
	proposal, _ := extraction["proposal"].(map[string]interface{})
	proposalId, _ := proposal["id"].(string)

	listed := step("3. List pending artifacts", "GET", "/customers/"+customerId+"/artifacts?status=pending", nil, http.StatusOK)
	artifacts, _ := listed["artifacts"].([]interface{})
	var interestArtifactId string
	for _, a := range artifacts {
		art, _ := a.(map[string]interface{})
		if art["artifactType"] == "interest_proposal" {
			interestArtifactId, _ = art["id"].(string)
			break
		}
	}

	if interestArtifactId != "" {
		step("4. Confirm an interest", "POST", "/customers/"+customerId+"/interests/confirm", map[string]interface{}{
			"artifactId": interestArtifactId,
			"rmId":       rmId,
		}, http.StatusCreated)
	}

	step("5. Apply the rest", "POST", "/customers/"+customerId+"/apply-updates", map[string]interface{}{
		"proposalId":                proposalId,
		"approvedFieldIds":          []string{"f1", "f2"},
		"approvedAdditionalDataIds": []string{"a1"},
		"approvedInterestIds":       []string{"i2"},
		"approvedNote":              true,
		"rmId":                      rmId,
	}, http.StatusOK)

	step("6. Interests", "GET", "/customers/"+customerId+"/interests", nil, http.StatusOK)
	step("7. Notes", "GET", "/customers/"+customerId+"/notes", nil, http.StatusOK)

	color.Cyan("\n✅ Smoke run finished")
}
