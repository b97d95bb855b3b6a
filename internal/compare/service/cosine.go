package service

import (
	"math"
	"strings"
)

// ngramCounts — частоты символьных n-грамм (n=1..3) по рунам строки в нижнем
// регистре. Пробелы и пунктуация участвуют как обычные символы.
func ngramCounts(s string) map[string]float64 {
	runes := []rune(strings.ToLower(s))
	counts := make(map[string]float64)
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(runes); i++ {
			counts[string(runes[i:i+n])]++
		}
	}
	return counts
}

// cosineSimilarity строит TF-IDF пространство на паре сырых текстов и отдаёт
// косинус угла между векторами. Вырожденный вход (нет ни одной n-граммы с
// какой-то из сторон) даёт 0.0 — наружу ошибки не ходят.
//
// IDF сглаженный: ln((1+N)/(1+df))+1 при N=2; вектора L2-нормируются, поэтому
// косинус равен скалярному произведению нормированных весов.
func cosineSimilarity(text1, text2 string) float64 {
	tf1 := ngramCounts(text1)
	tf2 := ngramCounts(text2)
	if len(tf1) == 0 || len(tf2) == 0 {
		return 0.0
	}

	w1, n1 := tfidf(tf1, tf2)
	w2, n2 := tfidf(tf2, tf1)
	if n1 == 0 || n2 == 0 {
		return 0.0
	}

	var dot float64
	for g, v := range w1 {
		if u, ok := w2[g]; ok {
			dot += v * u
		}
	}
	return dot / (n1 * n2)
}

// tfidf взвешивает n-граммы документа own относительно двухдокументного
// корпуса {own, other}; возвращает веса и L2-норму.
func tfidf(own, other map[string]float64) (map[string]float64, float64) {
	w := make(map[string]float64, len(own))
	var norm float64
	for g, tf := range own {
		df := 1.0
		if _, ok := other[g]; ok {
			df = 2.0
		}
		v := tf * (math.Log(3.0/(1.0+df)) + 1.0)
		w[g] = v
		norm += v * v
	}
	return w, math.Sqrt(norm)
}
