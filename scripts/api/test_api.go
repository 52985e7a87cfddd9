// Minimal end-to-end integration test for the TalentPath API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8080/v1")
	redisURL = getenv("REDIS_URL", "redis://localhost:6379/0")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

type proposalView struct {
	ID       uint64  `json:"id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	TotalXP  int     `json:"total_xp"`
	Courses  []struct {
		CourseID    uint64 `json:"course_id"`
		IsCompleted bool   `json:"is_completed"`
	} `json:"courses"`
	Milestones []struct {
		Type string `json:"type"`
		XP   int    `json:"xp"`
	} `json:"milestones"`
}

func main() {
	ctx := context.Background()
	rdb := mustRedis()
	defer rdb.Close()

	run := uuid.NewString()[:8]
	companyTok, _ := register("company", "hr+"+run+"@acme.test", "Acme Corp")
	talentTok, talentID := register("talent", "dev+"+run+"@mail.test", "")

	// Full proposal lifecycle: sent -> accepted -> all courses done -> hired.
	prop := createProposal(companyTok, talentID, []uint64{1, 2, 4})
	updateStatus(talentTok, prop.ID, "accepted")

	for _, courseID := range []uint64{1, 2, 4} {
		doAuth(talentTok, "POST", fmt.Sprintf("/proposals/%d/courses/%d/start", prop.ID, courseID), nil, nil, http.StatusOK)
		doAuth(talentTok, "POST", fmt.Sprintf("/proposals/%d/courses/%d/complete", prop.ID, courseID), nil, &prop, http.StatusOK)
	}
	if prop.Status != "completed" {
		log.Fatalf("proposal: want completed after last course, got %s", prop.Status)
	}
	if prop.Progress != 1.0 {
		log.Fatalf("proposal: want progress 1.0, got %v", prop.Progress)
	}
	checkMilestone(prop, "all_complete")
	checkMilestone(prop, "streak_3")

	hire(companyTok, prop.ID)
	sendMessage(companyTok, prop.ID)
	checkNotifications(ctx, rdb)

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- auth

func register(role, email, companyName string) (string, uint64) {
	var resp struct {
		ID    uint64
		Token string
	}
	doJSON("POST", "/auth/register", map[string]any{
		"email":       email,
		"password":    "integration-pass",
		"role":        role,
		"name":        role + " " + email,
		"companyName": companyName,
	}, &resp, http.StatusCreated)
	if resp.Token == "" {
		log.Fatalf("register %s: empty token", role)
	}
	return resp.Token, resp.ID
}

// ----------------------------- proposals

func createProposal(tok string, talentID uint64, courseIDs []uint64) proposalView {
	var resp proposalView
	doAuth(tok, "POST", "/proposals", map[string]any{
		"talentId":    talentID,
		"message":     "integration-test " + uuid.NewString(),
		"budgetRange": "50k-70k",
		"courseIds":   courseIDs,
	}, &resp, http.StatusCreated)
	if resp.Status != "sent" {
		log.Fatalf("create: want sent, got %s", resp.Status)
	}
	return resp
}

func updateStatus(tok string, id uint64, status string) {
	doAuth(tok, "PUT", fmt.Sprintf("/proposals/%d", id), map[string]any{
		"status": status,
	}, nil, http.StatusOK)
}

func hire(tok string, id uint64) {
	var resp proposalView
	doAuth(tok, "PUT", fmt.Sprintf("/proposals/%d", id), map[string]any{
		"status":      "hired",
		"hiringNotes": "great progress",
	}, &resp, http.StatusOK)
	if resp.Status != "hired" {
		log.Fatalf("hire: want hired, got %s", resp.Status)
	}
}

func sendMessage(tok string, id uint64) {
	doAuth(tok, "POST", fmt.Sprintf("/proposals/%d/messages", id), map[string]any{
		"body": "welcome aboard",
	}, nil, http.StatusCreated)
}

func checkMilestone(p proposalView, typ string) {
	for _, m := range p.Milestones {
		if m.Type == typ {
			return
		}
	}
	log.Fatalf("milestones: %s not awarded", typ)
}

// ----------------------------- notifications

func checkNotifications(ctx context.Context, rdb *redis.Client) {
	n, err := rdb.XLen(ctx, "talentpath.notifications").Result()
	if err != nil {
		log.Fatalf("redis xlen: %v", err)
	}
	if n == 0 {
		log.Fatal("notifications: stream is empty")
	}
}

// ----------------------------- helpers

func mustRedis() *redis.Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	return redis.NewClient(opt)
}

func doAuth(token, method, path string, body, out any, want int) {
	doReq(method, path, token, body, out, want)
}

func doJSON(method, path string, body, out any, want int) {
	doReq(method, path, "", body, out, want)
}

func doReq(method, path, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
