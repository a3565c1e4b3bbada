package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
)

const (
	cloneTimeout   = 2 * time.Minute
	aiCallTimeout  = 90 * time.Second
	maxFileContent = 8000 // bytes sent to the model per file
	maxFilesPerRun = 40
)

// Source files the AI scan considers. Everything else in the clone is noise.
var aiScanExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".java": true,
	".c": true, ".cpp": true, ".h": true, ".hpp": true, ".cs": true,
	".rb": true, ".rs": true, ".kt": true, ".swift": true, ".sql": true,
}

var aiScanSkipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true,
	"build": true, "__pycache__": true, ".idea": true, ".vscode": true,
}

// AIReviewConfig carries the LLM endpoint settings and the workspace root
// for cloned submissions.
type AIReviewConfig struct {
	APIKey   string
	APIURL   string
	Model    string
	CloneDir string
}

// AIFileResult is the model's verdict for one file of a cloned submission.
type AIFileResult struct {
	Path       string  `json:"path"`
	Percentage float64 `json:"percentage"`
	Band       string  `json:"band"`
}

// AICheckResult summarizes an AI-likelihood scan. Both the average and the
// per-file breakdown are persisted on the review.
type AICheckResult struct {
	ReviewID   uint           `json:"review_id"`
	Files      []AIFileResult `json:"files"`
	Average    float64        `json:"average"`
	Band       string         `json:"band"`
	FilesTotal int            `json:"files_total"`
}

// AIReviewService clones submitted repositories and estimates how much of
// their code is AI-generated via an external chat-completions API.
type AIReviewService interface {
	DownloadRepository(ctx context.Context, reviewID uint) (*models.HomeworkReview, error)
	CheckAI(ctx context.Context, reviewID uint) (*AICheckResult, error)
}

type aiReviewService struct {
	repo       repositories.Repository
	config     AIReviewConfig
	logger     *slog.Logger
	httpClient *http.Client
}

func NewAIReviewService(repo repositories.Repository, config AIReviewConfig, logger *slog.Logger) AIReviewService {
	return &aiReviewService{
		repo:   repo,
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: aiCallTimeout,
		},
	}
}

// ===== DOWNLOAD =====

// DownloadRepository clones the review's submitted URL into the local
// workspace and records the clone path on the review. An earlier clone for
// the same review is replaced.
func (s *aiReviewService) DownloadRepository(ctx context.Context, reviewID uint) (*models.HomeworkReview, error) {
	review, err := s.repo.Review().GetByID(ctx, reviewID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.URL == "" {
		return nil, NewValidationError("url", "review has no repository url", nil)
	}

	targetDir := filepath.Join(s.config.CloneDir, fmt.Sprintf("review-%d", reviewID))
	if err := os.RemoveAll(targetDir); err != nil {
		return nil, fmt.Errorf("failed to clear clone target: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, cloneTimeout)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", "1", review.URL, targetDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.logger.Error("git clone failed",
			"review_id", reviewID, "url", review.URL, "output", string(output))
		return nil, fmt.Errorf("failed to clone %s: %w", review.URL, err)
	}

	review.LocalDirectory = &targetDir
	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to record clone path: %w", err)
	}

	s.logger.Info("Cloned submission", "review_id", reviewID, "directory", targetDir)
	return review, nil
}

// ===== AI CHECK =====

// CheckAI walks the cloned tree, asks the model for a per-file AI-likelihood
// percentage, and persists the average and the per-file breakdown on the
// review.
func (s *aiReviewService) CheckAI(ctx context.Context, reviewID uint) (*AICheckResult, error) {
	review, err := s.repo.Review().GetByID(ctx, reviewID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.LocalDirectory == nil || *review.LocalDirectory == "" {
		return nil, ErrRepositoryNotCloned
	}
	if _, err := os.Stat(*review.LocalDirectory); err != nil {
		return nil, ErrRepositoryNotCloned
	}

	files, err := s.collectSourceFiles(*review.LocalDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to walk clone: %w", err)
	}
	if len(files) == 0 {
		return nil, NewBusinessRuleError("no_source_files",
			"the cloned repository contains no scannable source files",
			map[string]interface{}{"review_id": reviewID})
	}

	result := &AICheckResult{ReviewID: reviewID, FilesTotal: len(files)}
	var sum float64
	for _, path := range files {
		percentage, err := s.scoreFile(ctx, *review.LocalDirectory, path)
		if err != nil {
			s.logger.Warn("AI scoring failed for file",
				"review_id", reviewID, "file", path, "error", err)
			continue
		}
		result.Files = append(result.Files, AIFileResult{
			Path:       path,
			Percentage: percentage,
			Band:       AIRiskBand(percentage),
		})
		sum += percentage
	}
	if len(result.Files) == 0 {
		return nil, ErrAIServiceUnavailable
	}

	result.Average = sum / float64(len(result.Files))
	result.Band = AIRiskBand(result.Average)

	fileScores, err := json.Marshal(result.Files)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal file scores: %w", err)
	}

	review.AIPercentage = &result.Average
	review.AIFileScores = datatypes.JSON(fileScores)
	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to persist ai scan: %w", err)
	}

	s.logger.Info("Completed AI scan",
		"review_id", reviewID,
		"files_scored", len(result.Files),
		"average", result.Average,
		"band", result.Band)
	return result, nil
}

func (s *aiReviewService) collectSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if aiScanSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if len(files) >= maxFilesPerRun {
			return filepath.SkipAll
		}
		if aiScanExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

func (s *aiReviewService) scoreFile(ctx context.Context, root, rel string) (float64, error) {
	content, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return 0, err
	}
	if len(content) > maxFileContent {
		content = content[:maxFileContent]
	}

	prompt := fmt.Sprintf(
		"Estimate what percentage of the following source file was generated by an AI assistant. "+
			"Respond with a single number from 0 to 100 and nothing else.\n\nFile: %s\n\n%s",
		rel, string(content))

	raw, err := s.completeChat(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return parsePercentage(raw)
}

// chat-completions wire types, compatible with the DeepSeek and OpenAI APIs.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *aiReviewService) completeChat(ctx context.Context, prompt string) (string, error) {
	if s.config.APIKey == "" {
		return "", ErrAIServiceUnavailable
	}

	payload, err := json.Marshal(chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("chat api returned %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("chat api returned %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parsePercentage extracts the leading number from a model reply and clamps
// it into [0, 100].
func parsePercentage(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "%")

	var numeric strings.Builder
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' {
			numeric.WriteRune(r)
			continue
		}
		if numeric.Len() > 0 {
			break
		}
	}
	if numeric.Len() == 0 {
		return 0, fmt.Errorf("no number in model reply %q", raw)
	}

	value, err := strconv.ParseFloat(numeric.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable number in model reply %q: %w", raw, err)
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return value, nil
}
