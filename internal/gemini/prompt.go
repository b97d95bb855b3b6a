package gemini

import (
	"fmt"

	"similarity-service/internal/compare/model"
)

// Тексты режем до префикса перед отправкой — ограничиваем размер payload.
const (
	analysisPrefixLen   = 500
	suggestionPrefixLen = 200
)

// analysisPrompt просит модель вернуть JSON с фиксированными полями; парсер
// на той стороне best-effort, поэтому формат проговорён прямо в промпте.
func analysisPrompt(text1, text2 string) string {
	return fmt.Sprintf(`Analyze the similarity between these two texts and provide a comprehensive analysis:

Text 1: "%s..."

Text 2: "%s..."

Please provide:
1. A similarity score from 0.0 to 1.0 based on semantic meaning
2. Key insights about the relationship between the texts
3. What makes them similar or different
4. The main themes or topics in each text
5. Any notable patterns or writing styles

Format your response as JSON with these fields:
{
    "semantic_similarity": <float between 0.0 and 1.0>,
    "insights": "<string with analysis>",
    "themes_text1": ["<theme1>", "<theme2>"],
    "themes_text2": ["<theme1>", "<theme2>"],
    "key_differences": "<string>",
    "writing_style_comparison": "<string>"
}`,
		truncateRunes(text1, analysisPrefixLen),
		truncateRunes(text2, analysisPrefixLen),
	)
}

// suggestionPrompt — вторая операция оракула: свободный текст, без JSON.
// В промпт попадают уже посчитанные метрики.
func suggestionPrompt(text1, text2 string, s model.Scores) string {
	return fmt.Sprintf(`Based on these similarity metrics between two texts:
- Cosine Similarity: %.3f
- Character Similarity: %.3f
- Jaccard Index: %.3f
- Word Overlap: %.1f%%

Text 1: "%s..."
Text 2: "%s..."

Provide 3 specific suggestions for improving text similarity if that was the goal.
Keep each suggestion under 50 words and focus on practical writing tips.
Format as a simple numbered list.`,
		s.CosineSimilarity,
		s.CharacterSimilarity,
		s.JaccardIndex,
		s.WordOverlap,
		truncateRunes(text1, suggestionPrefixLen),
		truncateRunes(text2, suggestionPrefixLen),
	)
}

// truncateRunes режет по рунам, не по байтам, чтобы не ломать UTF-8.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
