package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"similarity-service/internal/compare/model"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: "test-key", APIURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
}

// geminiReply оборачивает текст в форму ответа generateContent.
func geminiReply(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return b
}

func TestAnalyzeSimilarity_ParsesReply(t *testing.T) {
	payload := `{"semantic_similarity": 0.82, "insights": "Both discuss weather.", "themes_text1": ["weather"], "themes_text2": ["climate"], "key_differences": "tone", "writing_style_comparison": "formal vs casual"}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		// модель любит обрамлять JSON прозой
		_, _ = w.Write(geminiReply("Here is the JSON:\n" + payload + "\nHope it helps!"))
	})

	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.False(t, a.Degraded)
	assert.InDelta(t, 0.82, a.SemanticSimilarity, 1e-9)
	assert.Equal(t, "Both discuss weather.", a.Insights)
	assert.Equal(t, []string{"weather"}, a.ThemesText1)
	assert.Equal(t, []string{"climate"}, a.ThemesText2)
	assert.Equal(t, "tone", a.KeyDifferences)
}

func TestAnalyzeSimilarity_ProseFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(geminiReply("I cannot produce structured output today."))
	})

	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.True(t, a.Degraded)
	assert.Equal(t, 0.5, a.SemanticSimilarity)
	assert.Equal(t, "I cannot produce structured output today.", a.Insights)
	assert.Equal(t, []string{"General content"}, a.ThemesText1)
	assert.Equal(t, []string{"General content"}, a.ThemesText2)
}

func TestAnalyzeSimilarity_NotConfigured(t *testing.T) {
	// без ключа сетевой вызов не делается вовсе
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL}, zerolog.Nop())
	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.False(t, called)
	assert.False(t, c.Configured())
	assert.True(t, a.Degraded)
	assert.Equal(t, 0.5, a.SemanticSimilarity)
	assert.Equal(t, "Unable to generate AI analysis. Please check your API key and internet connection.", a.Insights)
	assert.Equal(t, "Analysis could not be completed", a.KeyDifferences)
	assert.Equal(t, "Unable to compare writing styles", a.WritingStyleComparison)
}

func TestAnalyzeSimilarity_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.True(t, a.Degraded)
	assert.Equal(t, 0.5, a.SemanticSimilarity)
	assert.Contains(t, a.Reason, "429")
}

func TestAnalyzeSimilarity_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write(geminiReply("too late"))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{APIKey: "k", APIURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.True(t, a.Degraded)
	assert.Equal(t, 0.5, a.SemanticSimilarity)
}

func TestAnalyzeSimilarity_StringScore(t *testing.T) {
	// число строкой — тоже валидный ответ модели
	payload := `{"semantic_similarity": "0.9", "insights": "ok", "themes_text1": [], "themes_text2": [], "key_differences": "", "writing_style_comparison": ""}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(geminiReply(payload))
	})

	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.False(t, a.Degraded)
	assert.InDelta(t, 0.9, a.SemanticSimilarity, 1e-9)
	assert.Equal(t, []string{}, a.ThemesText1)
}

func TestAnalyzeSimilarity_ClampsScore(t *testing.T) {
	payload := `{"semantic_similarity": 1.7, "insights": "x", "themes_text1": null, "themes_text2": null, "key_differences": "", "writing_style_comparison": ""}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(geminiReply(payload))
	})

	a := c.AnalyzeSimilarity(context.Background(), "t1", "t2")

	assert.False(t, a.Degraded)
	assert.Equal(t, 1.0, a.SemanticSimilarity)
	// null-темы не должны утекать как nil
	assert.NotNil(t, a.ThemesText1)
	assert.NotNil(t, a.ThemesText2)
}

func TestSuggestImprovements_ReturnsReply(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		// метрики должны дойти до промпта
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Cosine Similarity: 0.420")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Word Overlap: 75.0%")
		_, _ = w.Write(geminiReply("1. Align vocabulary.\n2. Match tone.\n3. Restructure."))
	})

	out := c.SuggestImprovements(context.Background(), "t1", "t2", model.Scores{
		CosineSimilarity: 0.42,
		WordOverlap:      75.0,
	})
	assert.Equal(t, "1. Align vocabulary.\n2. Match tone.\n3. Restructure.", out)
}

func TestSuggestImprovements_NotConfigured(t *testing.T) {
	c := New(Config{}, zerolog.Nop())
	out := c.SuggestImprovements(context.Background(), "t1", "t2", model.Scores{})
	assert.Equal(t, "No suggestions available. Please check your API key.", out)
}

func TestSuggestImprovements_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	out := c.SuggestImprovements(context.Background(), "t1", "t2", model.Scores{})
	assert.Equal(t, "No suggestions available. Please check your API key.", out)
}

func TestParseAnalysis_NoJSON(t *testing.T) {
	_, ok := parseAnalysis("no braces at all")
	assert.False(t, ok)

	_, ok = parseAnalysis("}{")
	assert.False(t, ok)

	_, ok = parseAnalysis("{broken json")
	assert.False(t, ok)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	_, err := c.generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
