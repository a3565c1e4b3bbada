package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVDemon/frieren/internal/models"
)

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		wantErr  bool
	}{
		{"bare number", "42", 42, false},
		{"decimal", "17.5", 17.5, false},
		{"percent suffix", "85%", 85, false},
		{"surrounding prose", "Roughly 63 percent of this file looks generated.", 63, false},
		{"clamped above 100", "250", 100, false},
		{"zero", "0", 0, false},
		{"no number at all", "I cannot tell.", 0, true},
		{"empty reply", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := parsePercentage(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestAIReviewService_CheckAI_PersistsFileScores(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	source := filepath.Join(dir, "main.go")
	assert.NoError(t, os.WriteFile(source, []byte("package main\n\nfunc main() {}\n"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"42"}}]}`)
	}))
	defer server.Close()

	review := &models.HomeworkReview{ID: 9, StudentID: 1, Number: 2, LocalDirectory: &dir}

	repo := NewMockRepository()
	repo.ReviewRepo.On("GetByID", ctx, uint(9)).Return(review, nil)
	repo.ReviewRepo.On("Update", ctx, review).Return(nil)

	service := NewAIReviewService(repo, AIReviewConfig{
		APIKey: "test-key",
		APIURL: server.URL,
		Model:  "test-model",
	}, testSlog())

	result, err := service.CheckAI(ctx, 9)

	assert.NoError(t, err)
	assert.Len(t, result.Files, 1)
	assert.Equal(t, 42.0, result.Average)
	assert.Equal(t, "medium", result.Band)

	assert.NotNil(t, review.AIPercentage)
	assert.Equal(t, 42.0, *review.AIPercentage)

	var stored []AIFileResult
	assert.NoError(t, json.Unmarshal(review.AIFileScores, &stored))
	assert.Len(t, stored, 1)
	assert.Equal(t, "main.go", stored[0].Path)
	assert.Equal(t, 42.0, stored[0].Percentage)
	assert.Equal(t, "medium", stored[0].Band)
}
