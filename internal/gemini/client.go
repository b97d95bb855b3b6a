package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"similarity-service/internal/compare/model"
)

const (
	// DefaultAPIURL — endpoint generateContent; ключ добавляется query-параметром.
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	// DefaultTimeout — бюджет одного запроса к оракулу.
	DefaultTimeout = 30 * time.Second

	// maxReplyBytes — потолок на чтение тела ответа.
	maxReplyBytes = 1 << 20
)

// ErrNotConfigured — ключ не задан; сетевой вызов даже не начинается.
var ErrNotConfigured = errors.New("gemini: api key not configured")

// Config — явная конфигурация клиента. Никаких чтений окружения внутри:
// всё, что нужно, приходит при создании.
type Config struct {
	APIKey  string
	APIURL  string        // пусто = DefaultAPIURL; в тестах — httptest-сервер
	Timeout time.Duration // пусто = DefaultTimeout
}

// Client ходит к Gemini за семантическим разбором пары текстов. Любой отказ
// (нет ключа, сеть, не-200, мусор вместо JSON) вырождается в заглушку той же
// формы — наружу ошибки не поднимаются.
type Client struct {
	cfg    Config
	httpc  *http.Client
	logger zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Configured — задан ли ключ (для health-пробы).
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// AnalyzeSimilarity запрашивает у оракула структурированный разбор похожести.
// Состояния: нет ключа → заглушка без сети; отказ запроса → заглушка с
// причиной; ответ без валидного JSON → заглушка с сырым текстом в insights.
func (c *Client) AnalyzeSimilarity(ctx context.Context, text1, text2 string) model.Analysis {
	raw, err := c.generate(ctx, analysisPrompt(text1, text2))
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			c.logger.Debug().Msg("gemini: skip analysis, no api key")
			return fallbackAnalysis("", "api key not configured")
		}
		c.logger.Warn().Err(err).Msg("gemini: analysis request failed")
		return fallbackAnalysis("", err.Error())
	}

	if a, ok := parseAnalysis(raw); ok {
		return a
	}
	// Оракул ответил прозой — отдаём её оператору как insights, но помечаем
	// результат как деградировавший.
	c.logger.Warn().Msg("gemini: reply contained no parseable JSON")
	return fallbackAnalysis(raw, "response contained no parseable JSON")
}

// SuggestImprovements — свободный текст с советами по сближению текстов.
// Тот же трёхшаговый контракт, но без структурированного разбора; любой отказ
// превращается в объясняющее сообщение.
func (c *Client) SuggestImprovements(ctx context.Context, text1, text2 string, s model.Scores) string {
	raw, err := c.generate(ctx, suggestionPrompt(text1, text2, s))
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			c.logger.Warn().Err(err).Msg("gemini: suggestions request failed")
		}
		return "No suggestions available. Please check your API key."
	}
	return raw
}

// Запрос/ответ generateContent. Контракт best-effort: из ответа берётся
// candidates[0].content.parts[0].text.
type generateRequest struct {
	Contents []reqContent `json:"contents"`
}

type reqContent struct {
	Parts []reqPart `json:"parts"`
}

type reqPart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []reqPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate выполняет один POST к оракулу и возвращает текст первого
// кандидата. Все отказы — обычные ошибки; решают, что с ними делать, методы
// уровнем выше.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []reqContent{{Parts: []reqPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := c.cfg.APIURL
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	endpoint += sep + "key=" + url.QueryEscape(c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("gemini: read reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, truncateRunes(string(data), 200))
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", fmt.Errorf("gemini: decode reply: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: reply has no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// analysisWire — ожидаемый JSON внутри ответа оракула.
type analysisWire struct {
	SemanticSimilarity     flexFloat `json:"semantic_similarity"`
	Insights               string    `json:"insights"`
	ThemesText1            []string  `json:"themes_text1"`
	ThemesText2            []string  `json:"themes_text2"`
	KeyDifferences         string    `json:"key_differences"`
	WritingStyleComparison string    `json:"writing_style_comparison"`
}

// parseAnalysis вынимает JSON-объект между первой '{' и последней '}' и
// декодирует его. ok=false — значит дальше сработает заглушка.
func parseAnalysis(raw string) (model.Analysis, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return model.Analysis{}, false
	}

	var w analysisWire
	if err := json.Unmarshal([]byte(raw[start:end+1]), &w); err != nil {
		return model.Analysis{}, false
	}

	return model.Analysis{
		SemanticSimilarity:     clamp01(float64(w.SemanticSimilarity)),
		Insights:               w.Insights,
		ThemesText1:            emptyIfNil(w.ThemesText1),
		ThemesText2:            emptyIfNil(w.ThemesText2),
		KeyDifferences:         w.KeyDifferences,
		WritingStyleComparison: w.WritingStyleComparison,
	}, true
}

// fallbackAnalysis — деградировавший результат той же формы, что и успешный:
// нейтральная похожесть 0.5, сырой текст оракула (если был) как insights,
// плейсхолдеры вместо тем. Потребителям не нужно ветвиться по доступности.
func fallbackAnalysis(rawText, reason string) model.Analysis {
	insights := rawText
	if insights == "" {
		insights = "Unable to generate AI analysis. Please check your API key and internet connection."
	}
	return model.Analysis{
		SemanticSimilarity:     0.5,
		Insights:               insights,
		ThemesText1:            []string{"General content"},
		ThemesText2:            []string{"General content"},
		KeyDifferences:         "Analysis could not be completed",
		WritingStyleComparison: "Unable to compare writing styles",
		Degraded:               true,
		Reason:                 reason,
	}
}

// flexFloat принимает число или числовую строку — модель отдаёт и так, и так.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("flexFloat: %q is not a number", s)
	}
	*f = flexFloat(v)
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
