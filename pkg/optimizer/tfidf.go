package optimizer

import (
	"math"
	"sort"
	"sync"
)

// KeywordMatcher 关键词相关性匹配器。
//
// 替换默认的词集重叠比率，用于需要更精细词频权重的场景。
type KeywordMatcher interface {
	// Fit 根据语料构建内部统计。
	Fit(documents []string)

	// Match 计算任务描述与内容的相关性（0.0-1.0）。
	Match(task, content string) float64
}

// TFIDFMatcher 基于 TF-IDF 余弦相似度的关键词匹配器。
//
// 本地计算，无需外部 API。
type TFIDFMatcher struct {
	vocabulary map[string]int // 词汇表：词 -> 索引
	idf        []float64      // 逆文档频率
	mu         sync.RWMutex
}

// NewTFIDFMatcher 创建 TF-IDF 匹配器。
func NewTFIDFMatcher() *TFIDFMatcher {
	return &TFIDFMatcher{
		vocabulary: make(map[string]int),
	}
}

// Fit 根据文档集合构建词汇表并计算 IDF。
func (m *TFIDFMatcher) Fit(documents []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wordDocCount := make(map[string]int)
	allWords := make(map[string]struct{})

	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, token := range keywordTokens(doc) {
			allWords[token] = struct{}{}
			if _, ok := seen[token]; !ok {
				wordDocCount[token]++
				seen[token] = struct{}{}
			}
		}
	}

	// 按字母顺序排序以保证索引一致
	words := make([]string, 0, len(allWords))
	for word := range allWords {
		words = append(words, word)
	}
	sort.Strings(words)

	m.vocabulary = make(map[string]int, len(words))
	for i, word := range words {
		m.vocabulary[word] = i
	}

	m.idf = make([]float64, len(words))
	n := float64(len(documents))
	for word, idx := range m.vocabulary {
		df := float64(wordDocCount[word])
		m.idf[idx] = math.Log(n/df) + 1.0
	}
}

// Match 计算任务描述与内容的余弦相似度。
//
// 未调用 Fit 或任一侧无有效词元时返回 0。
func (m *TFIDFMatcher) Match(task, content string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	taskVec := m.vector(task)
	contentVec := m.vector(content)
	if taskVec == nil || contentVec == nil {
		return 0
	}

	// 向量已归一化，余弦相似度即点积
	var dot float64
	for i := range taskVec {
		dot += taskVec[i] * contentVec[i]
	}
	return clamp01(dot)
}

// VocabularySize 返回词汇表大小。
func (m *TFIDFMatcher) VocabularySize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vocabulary)
}

// Clear 清空匹配器状态。
func (m *TFIDFMatcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vocabulary = make(map[string]int)
	m.idf = nil
}

// vector 将文本转换为归一化的 TF-IDF 向量（调用者需持有读锁）。
func (m *TFIDFMatcher) vector(text string) []float64 {
	if len(m.vocabulary) == 0 {
		return nil
	}

	tf := make(map[string]int)
	for _, token := range keywordTokens(text) {
		tf[token]++
	}
	if len(tf) == 0 {
		return nil
	}

	vec := make([]float64, len(m.vocabulary))
	var norm float64
	for word, count := range tf {
		idx, ok := m.vocabulary[word]
		if !ok {
			continue
		}
		// TF = log(1 + count)
		vec[idx] = math.Log(1+float64(count)) * m.idf[idx]
		norm += vec[idx] * vec[idx]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// keywordTokens 分词并过滤停用词。
func keywordTokens(text string) []string {
	var tokens []string
	for _, token := range tokenize(text) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// 编译时接口检查
var _ KeywordMatcher = (*TFIDFMatcher)(nil)
