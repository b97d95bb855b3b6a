package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"similarity-service/internal/compare/model"
	"similarity-service/internal/compare/service"
	"similarity-service/internal/fileio"
	"similarity-service/internal/gemini"
)

// compareRequest — тело POST /compare.
type compareRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

// Compare сравнивает два текста из JSON-тела.
// Пайплайн: валидация -> метрики -> параллельное обогащение через Gemini -> JSON.
func Compare(oracle *gemini.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, logger)

		defer r.Body.Close()
		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
			return
		}

		text1 := strings.TrimSpace(req.Text1)
		text2 := strings.TrimSpace(req.Text2)
		if text1 == "" || text2 == "" {
			respondError(w, http.StatusBadRequest, "Please enter both texts")
			return
		}

		rep := buildReport(r.Context(), oracle, text1, text2)
		respondJSON(w, http.StatusOK, rep)

		log.Info().
			Int("text1_chars", rep.Stats.Text1Chars).
			Int("text2_chars", rep.Stats.Text2Chars).
			Bool("degraded", rep.GeminiAnalysis != nil && rep.GeminiAnalysis.Degraded).
			Dur("elapsed", time.Since(start)).
			Msg("compare done")
	}
}

// CompareFiles — то же сравнение, но пара текстов приходит файлами fileA/fileB
// (multipart). Текст достаём через fileio, дальше конвейер общий.
func CompareFiles(oracle *gemini.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, logger)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		fileA, headerA, err := r.FormFile("fileA")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing fileA: "+err.Error())
			return
		}
		defer fileA.Close()

		fileB, headerB, err := r.FormFile("fileB")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing fileB: "+err.Error())
			return
		}
		defer fileB.Close()

		// два независимых файла — извлекаем параллельно
		var text1, text2 string
		var g errgroup.Group
		g.Go(func() error {
			s, err := fileio.ExtractText(fileA, headerA.Filename)
			if err != nil {
				return fmt.Errorf("fileA: %w", err)
			}
			text1 = s
			return nil
		})
		g.Go(func() error {
			s, err := fileio.ExtractText(fileB, headerB.Filename)
			if err != nil {
				return fmt.Errorf("fileB: %w", err)
			}
			text2 = s
			return nil
		})
		if err := g.Wait(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		text1 = strings.TrimSpace(text1)
		text2 = strings.TrimSpace(text2)
		if text1 == "" || text2 == "" {
			respondError(w, http.StatusBadRequest, "Please enter both texts")
			return
		}

		rep := buildReport(r.Context(), oracle, text1, text2)
		respondJSON(w, http.StatusOK, rep)

		log.Info().
			Str("fileA", headerA.Filename).
			Str("fileB", headerB.Filename).
			Dur("elapsed", time.Since(start)).
			Msg("compare files done")
	}
}

// buildReport — метрики считаем синхронно, два запроса к Gemini гоним
// параллельно. Клиент Gemini никогда не возвращает ошибку (деградирует до
// заглушек), поэтому отчёт собирается всегда целиком.
func buildReport(ctx context.Context, oracle *gemini.Client, text1, text2 string) model.Report {
	rep := service.Compare(text1, text2)

	var (
		wg          sync.WaitGroup
		analysis    model.Analysis
		suggestions string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis = oracle.AnalyzeSimilarity(ctx, text1, text2)
	}()
	go func() {
		defer wg.Done()
		suggestions = oracle.SuggestImprovements(ctx, text1, text2, rep.Scores)
	}()
	wg.Wait()

	rep.GeminiAnalysis = &analysis
	rep.ImprovementSuggestions = suggestions
	return rep
}
