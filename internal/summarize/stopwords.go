package summarize

// englishStopWords is the built-in stop word set. It covers the
// high-frequency function words that would otherwise dominate any
// frequency-ranked keyword list.
var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also",
	"am", "an", "and", "any", "are", "aren", "as", "at", "be",
	"because", "been", "before", "being", "below", "between", "both",
	"but", "by", "can", "cannot", "could", "couldn", "did", "didn",
	"do", "does", "doesn", "doing", "don", "down", "during", "each",
	"few", "for", "from", "further", "had", "hadn", "has", "hasn",
	"have", "haven", "having", "he", "her", "here", "hers", "herself",
	"him", "himself", "his", "how", "i", "if", "in", "into", "is",
	"isn", "it", "its", "itself", "just", "me", "more", "most", "my",
	"myself", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "same", "shan", "she", "should", "shouldn", "so", "some",
	"such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was",
	"wasn", "we", "were", "weren", "what", "when", "where", "which",
	"while", "who", "whom", "why", "will", "with", "won", "would",
	"wouldn", "you", "your", "yours", "yourself", "yourselves",
}

// germanStopWords is a compact German set; archive trees in mixed
// German/English environments carry both languages.
var germanStopWords = []string{
	"aber", "alle", "als", "also", "am", "an", "auch", "auf", "aus",
	"bei", "bin", "bis", "da", "damit", "dann", "das", "dass", "dem",
	"den", "der", "des", "die", "diese", "doch", "durch", "ein",
	"eine", "einem", "einen", "einer", "eines", "er", "es", "für",
	"hab", "habe", "haben", "hat", "hatte", "hier", "ich", "ihr",
	"im", "in", "ist", "ja", "kann", "kein", "können", "mehr", "mit",
	"nach", "nicht", "noch", "nur", "oder", "ohne", "schon", "sein",
	"sich", "sie", "sind", "so", "über", "um", "und", "uns", "unter",
	"vom", "von", "vor", "war", "waren", "was", "wenn", "werden",
	"wie", "wir", "wird", "zu", "zum", "zur",
}

// stopWordsFor returns the stop word set for a language code.
// Unknown languages fall back to English.
func stopWordsFor(lang string) []string {
	switch lang {
	case "de", "german":
		return germanStopWords
	default:
		return englishStopWords
	}
}

// buildStopWordMap converts a slice of stop words to a lookup map.
func buildStopWordMap(words ...[]string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, list := range words {
		for _, w := range list {
			m[w] = struct{}{}
		}
	}
	return m
}
