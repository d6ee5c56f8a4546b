package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"learnhub/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func TestRoot(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})

	status, body := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "World", body["Hello"])
}

func TestUsers_CreateAndGet(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})

	status, created := doJSON(t, app, http.MethodPost, "/users/", map[string]any{
		"username": "ana",
		"password": "hunter2",
		"email":    "ana@example.com",
		"aboutme":  "guitarist",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, created, "password")
	id := created["user_id"].(float64)
	assert.Positive(t, id)

	status, fetched := doJSON(t, app, http.MethodGet, pathf("/users/%d", int(id)), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana", fetched["username"])
	assert.Equal(t, "ana@example.com", fetched["email"])
	assert.Equal(t, "guitarist", fetched["aboutme"])
	assert.NotContains(t, fetched, "password")
}

func TestUsers_CreateWithLongPassword(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})

	status, body := doJSON(t, app, http.MethodPost, "/users/", map[string]any{
		"username": "long",
		"password": strings.Repeat("x", 73),
		"email":    "long@example.com",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Positive(t, body["user_id"])
	assert.NotContains(t, body, "password")
}

func TestUsers_Errors(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown user", http.MethodGet, "/users/999", nil, http.StatusNotFound},
		{"invalid id", http.MethodGet, "/users/abc", nil, http.StatusBadRequest},
		{"zero id", http.MethodGet, "/users/0", nil, http.StatusBadRequest},
		{"missing fields", http.MethodPost, "/users/", map[string]any{"username": "x"}, http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/users/", map[string]any{"username": 5, "password": "p", "email": "e"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
			assert.NotContains(t, body, "user_id")
		})
	}
}

func TestCategories(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})

	status, created := doJSON(t, app, http.MethodPost, "/categories/", map[string]any{
		"category_name": "Music",
		"description":   "Instruments and theory",
	})
	require.Equal(t, http.StatusCreated, status)
	categoryID := uint(created["category_id"].(float64))
	assert.Equal(t, "Instruments and theory", created["description"])

	for _, name := range []string{"Guitar", "Piano", "Guitar"} {
		createSkill(t, app, categoryID, name)
	}

	status, body := doJSON(t, app, http.MethodGet, pathf("/category/%d", categoryID), nil)
	require.Equal(t, http.StatusOK, status)
	category := body["category"].(map[string]any)
	assert.Equal(t, "Music", category["category_name"])
	assert.Equal(t, []any{"Guitar", "Piano"}, body["unique_skills"])

	empty := createCategory(t, app, "Cooking")
	status, body = doJSON(t, app, http.MethodGet, pathf("/category/%d", empty), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["unique_skills"])

	status, _ = doJSON(t, app, http.MethodGet, "/category/404", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSkills(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})
	music := createCategory(t, app, "Music")
	code := createCategory(t, app, "Code")

	t.Run("path category overrides body", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, pathf("/category/%d/skills", music), map[string]any{
			"skill_name":  "Violin",
			"category_id": code,
		})
		require.Equal(t, http.StatusCreated, status)
		assert.EqualValues(t, music, body["category_id"])

		skillID := int(body["skill_id"].(float64))
		status, fetched := doJSON(t, app, http.MethodGet, pathf("/category/%d/skills/%d", music, skillID), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Violin", fetched["skill_name"])

		status, _ = doJSON(t, app, http.MethodGet, pathf("/category/%d/skills/%d", code, skillID), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("unknown category", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/category/999/skills", map[string]any{"skill_name": "Flute"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})
}

func TestLearnSkill(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})
	userID := createUser(t, app, "ana")
	categoryID := createCategory(t, app, "Music")
	skillID := createSkill(t, app, categoryID, "Guitar")

	payload := map[string]any{"skill_id": skillID, "proficiency_goal": "advanced", "priority": 1}

	status, body := doJSON(t, app, http.MethodPost, pathf("/users/%d/learn-skill", userID), payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully added skill to learning list", body["message"])

	status, body = doJSON(t, app, http.MethodPost, pathf("/users/%d/learn-skill", userID), payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already learning this skill", body["error"])
	assert.Equal(t, "CONFLICT", body["code"])

	status, _ = doJSON(t, app, http.MethodPost, "/users/999/learn-skill", payload)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodPost, pathf("/users/%d/learn-skill", userID), map[string]any{"skill_id": 999})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodGet, pathf("/category/%d/skills/%d/learners", categoryID, skillID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["learners_count"])
	learners := body["learners"].([]any)
	require.Len(t, learners, 1)
	learner := learners[0].(map[string]any)
	assert.Equal(t, "advanced", learner["proficiency_goal"])
	assert.EqualValues(t, 1, learner["priority"])
	user := learner["user"].(map[string]any)
	assert.Equal(t, "ana", user["username"])
	assert.NotContains(t, user, "password")

	status, body = doJSON(t, app, http.MethodGet, pathf("/users/%d/learning-skills", userID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, userID, body["user_id"])
	learning := body["learning_skills"].([]any)
	require.Len(t, learning, 1)
	skill := learning[0].(map[string]any)["skill"].(map[string]any)
	assert.Equal(t, "Guitar", skill["skill_name"])
}

func TestTeachSkill(t *testing.T) {
	_, app := newTestServer(t, nil, generatorStub{})
	userID := createUser(t, app, "ben")
	categoryID := createCategory(t, app, "Code")
	skillID := createSkill(t, app, categoryID, "Go")

	status, body := doJSON(t, app, http.MethodGet, pathf("/category/%d/skills/%d/teachers", categoryID, skillID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["teachers_count"])
	assert.Equal(t, []any{}, body["teachers"])

	payload := map[string]any{"skill_id": skillID, "experience_level": "advanced", "years_experience": 8}
	status, body = doJSON(t, app, http.MethodPost, pathf("/users/%d/teach-skill", userID), payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully added skill to teaching list", body["message"])

	status, body = doJSON(t, app, http.MethodPost, pathf("/users/%d/teach-skill", userID), payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already teaching this skill", body["error"])

	status, body = doJSON(t, app, http.MethodGet, pathf("/category/%d/skills/%d/teachers", categoryID, skillID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["teachers_count"])

	status, body = doJSON(t, app, http.MethodGet, pathf("/users/%d/teaching-skills", userID), nil)
	require.Equal(t, http.StatusOK, status)
	teaching := body["teaching_skills"].([]any)
	require.Len(t, teaching, 1)
	assert.EqualValues(t, 8, teaching[0].(map[string]any)["years_experience"])

	status, body = doJSON(t, app, http.MethodGet, pathf("/users/%d/learning-skills", userID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["learning_skills"])

	status, _ = doJSON(t, app, http.MethodGet, "/users/999/teaching-skills", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, pathf("/category/999/skills/%d/learners", skillID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestChat(t *testing.T) {
	tests := []struct {
		name string
		gen  generatorStub
		want string
	}{
		{"reply", generatorStub{reply: "Start with open chords."}, "Start with open chords."},
		{"timeout", generatorStub{err: fmt.Errorf("%w: deadline", llm.ErrTimeout)}, "Request timed out. Please try again later."},
		{"upstream error", generatorStub{err: &llm.StatusError{StatusCode: 500, Body: "boom"}}, "API error: boom"},
		{"transport error", generatorStub{err: errors.New("no route to host")}, "An unexpected error occurred: no route to host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app := newTestServer(t, nil, tt.gen)
			status, body := doJSON(t, app, http.MethodPost, "/chat", map[string]any{"query": "how do I start?"})
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, body["response"])
		})
	}

	invalid := []struct {
		name string
		body any
	}{
		{"missing query", map[string]any{}},
		{"null query", map[string]any{"query": nil}},
		{"non-string query", map[string]any{"query": 42}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, app := newTestServer(t, nil, generatorStub{reply: "unused"})
			status, body := doJSON(t, app, http.MethodPost, "/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotContains(t, body, "response")
		})
	}

	for _, query := range []string{"", "   "} {
		t.Run(fmt.Sprintf("blank query %q is forwarded", query), func(t *testing.T) {
			rec := &promptRecorder{reply: "Ask me anything."}
			_, app := newTestServer(t, nil, rec)
			status, body := doJSON(t, app, http.MethodPost, "/chat", map[string]any{"query": query})
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "Ask me anything.", body["response"])
			assert.Equal(t, []string{query}, rec.prompts())
		})
	}
}

type promptRecorder struct {
	mu    sync.Mutex
	reply string
	seen  []string
}

func (r *promptRecorder) GenerateText(_ context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, prompt)
	return r.reply, nil
}

func (r *promptRecorder) prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func TestChat_SlowUpstreamAnswers200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"late"}]}}]}`))
	}))
	defer upstream.Close()

	client, err := llm.New(llm.Config{APIKey: "k", Endpoint: upstream.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	s, err := NewServerWithDeps(testConfig(), setupTestDB(t), nil, client)
	require.NoError(t, err)

	status, body := doJSON(t, s.App(), http.MethodPost, "/chat", map[string]any{"query": "hello"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Request timed out. Please try again later.", body["response"])
}
