package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/nasa-image-explorer/internal/quiz"
)

func TestQuizEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cat, err := quiz.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	h := New(nil, nil, nil, cat, Options{})
	r := gin.New()
	r.GET("/quiz", h.ListQuizzes)
	r.GET("/quiz/:id", h.GetQuiz)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz", nil))
	var all []quiz.Quiz
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil || w.Code != http.StatusOK || len(all) != 2 {
		t.Fatalf("list: %d %v %d", w.Code, err, len(all))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz/space-exploration", nil))
	var one quiz.Quiz
	if err := json.Unmarshal(w.Body.Bytes(), &one); err != nil || one.ID != "space-exploration" || len(one.Questions) != 5 {
		t.Fatalf("get: %d %v %+v", w.Code, err, one)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz/unknown", nil))
	if er := decodeErr(t, w); w.Code != http.StatusNotFound || er.Message != "Quiz not found" {
		t.Fatalf("missing quiz: %d %+v", w.Code, er)
	}
}
