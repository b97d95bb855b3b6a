package model

// NormalizedText — производная от исходного текста, только чтение.
// Words хранит порядок и дубликаты (для статистики), WordSet/Chars — множества
// для метрик пересечения. Живёт в пределах одного запроса.
type NormalizedText struct {
	Words   []string            // слова [a-z] в исходном порядке
	WordSet map[string]struct{} // уникальные слова
	Chars   map[rune]struct{}   // уникальные символы [a-z]
}

// Scores — пять метрик похожести. Все считаются чистыми функциями от пары
// текстов; edit_distance — исторически сложившееся имя для разницы длин
// в символах, НЕ расстояние редактирования.
type Scores struct {
	CosineSimilarity    float64 `json:"cosine_similarity"`    // TF-IDF по символьным n-граммам (1..3), [0..1]
	JaccardIndex        float64 `json:"jaccard_index"`        // |∩|/|∪| по множествам слов, [0..1]
	WordOverlap         float64 `json:"word_overlap"`         // 2·shared/(|s1|+|s2|)·100, [0..100]
	CharacterSimilarity float64 `json:"character_similarity"` // |∩|/|∪| по множествам символов, [0..1]
	EditDistance        int     `json:"edit_distance"`        // abs(len1-len2) по рунам исходных текстов
}

// Stats — базовая статистика пары текстов.
type Stats struct {
	Text1Words       int `json:"text1_words"` // число слов (с дубликатами)
	Text2Words       int `json:"text2_words"`
	Text1Chars       int `json:"text1_chars"` // длина исходного текста в рунах
	Text2Chars       int `json:"text2_chars"`
	TotalUniqueWords int `json:"total_unique_words"` // |words1 ∪ words2|
}

// Analysis — семантический разбор от внешнего оракула (Gemini).
// Degraded=true помечает заглушку: оракул недоступен либо его ответ не
// распарсился. Потребитель всегда получает одну и ту же форму.
type Analysis struct {
	SemanticSimilarity     float64  `json:"semantic_similarity"` // [0..1]
	Insights               string   `json:"insights"`
	ThemesText1            []string `json:"themes_text1"`
	ThemesText2            []string `json:"themes_text2"`
	KeyDifferences         string   `json:"key_differences"`
	WritingStyleComparison string   `json:"writing_style_comparison"`

	Degraded bool   `json:"degraded,omitempty"`        // true = заглушка, не результат разбора
	Reason   string `json:"degraded_reason,omitempty"` // почему скатились в заглушку
}

// Report — итог одного сравнения. Собирается один раз и больше не меняется.
type Report struct {
	Scores

	SharedWords []string `json:"shared_words"` // отсортированы, без дубликатов
	UniqueText1 []string `json:"unique_text1"`
	UniqueText2 []string `json:"unique_text2"`

	Stats Stats `json:"stats"`

	GeminiAnalysis         *Analysis `json:"gemini_analysis,omitempty"`
	ImprovementSuggestions string    `json:"improvement_suggestions,omitempty"`
}
