package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	DateCreated time.Time `json:"dateCreated"`
	Completed   bool      `json:"completed"`
}

type envelope struct {
	Task    task   `json:"task"`
	Message string `json:"message"`
}

var client = &http.Client{Timeout: 5 * time.Second}

// Walks every task endpoint against a running server and exits non-zero on the first mismatch.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := flag.String("base", "http://127.0.0.1:"+port, "server base URL")
	flag.Parse()
	api := *base + "/api/tasks"

	expect(call(http.MethodGet, *base+"/healthz", nil, nil), http.StatusOK, "liveness")

	var created envelope
	expect(call(http.MethodPost, api+"/todo", map[string]any{
		"title":       "smoke",
		"description": "api smoke test",
		"dueDate":     "2030-01-01",
	}, &created), http.StatusOK, "create")
	if created.Task.ID == "" || created.Task.Completed {
		log.Fatalf("create: unexpected task %+v", created.Task)
	}
	id := created.Task.ID
	log.Printf("created id=%s", id)

	var list []task
	expect(call(http.MethodGet, api+"?sortBy=dueDate", nil, &list), http.StatusOK, "list")
	found := false
	for _, t := range list {
		found = found || t.ID == id
	}
	if !found {
		log.Fatalf("list: task %s missing", id)
	}

	var done envelope
	expect(call(http.MethodPatch, api+"/complete/"+id, map[string]any{"completed": true}, &done), http.StatusOK, "complete")
	if !done.Task.Completed {
		log.Fatal("complete: task not marked completed")
	}

	expect(call(http.MethodPatch, api+"/notComplete/"+id, map[string]any{"completed": false}, &done), http.StatusOK, "notComplete")
	if done.Task.Completed {
		log.Fatal("notComplete: task still completed")
	}

	var updated envelope
	expect(call(http.MethodPut, api+"/update/"+id, map[string]any{
		"title":       "smoke (edited)",
		"description": "api smoke test",
		"dueDate":     "2030-02-01",
	}, &updated), http.StatusOK, "update")
	if updated.Task.ID != id || !updated.Task.DateCreated.Equal(created.Task.DateCreated) {
		log.Fatalf("update: identity changed %+v", updated.Task)
	}

	expect(call(http.MethodDelete, api+"/delete/"+id, nil, nil), http.StatusOK, "delete")
	expect(call(http.MethodDelete, api+"/delete/"+id, nil, nil), http.StatusNotFound, "delete again")
	expect(call(http.MethodPatch, api+"/complete/"+id, map[string]any{"completed": true}, nil), http.StatusNotFound, "complete deleted")

	fmt.Println("smoke ok")
}

func call(method, url string, body, out any) int {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		log.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()

	if out != nil && res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return res.StatusCode
}

func expect(got, want int, step string) {
	if got != want {
		log.Fatalf("%s: expected %d got %d", step, want, got)
	}
	log.Printf("%s ok (%d)", step, got)
}
