package pinyin

import (
	"regexp"
	"strings"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/sliceutil"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/stringutil"
	"golang.org/x/text/width"
)

var (
	// roomNamePattern recognizes room identifiers: a Chinese run, an
	// optional single letter, then a digit run (e.g. 正心101, 明德A102).
	roomNamePattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+[A-Za-z]?[0-9]+`)

	asciiAlnumRuns = regexp.MustCompile(`[A-Za-z0-9]+`)
	hanRuns        = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)
)

// IsMatch reports whether the free-text query identifies the named
// building or room. It is deterministic and never fails; an empty
// query matches everything.
//
// Strategies, first hit wins (the order is part of the contract):
//  1. Empty query
//  2. Literal substring (case-normalized and raw)
//  3. Pure-numeric query against the name's digits
//  4. Pure-alphabetic query against the lowercased name
//  5. Registered romanized forms (substring, prefix, or
//     delimiter-stripped mutual containment); a name with registered
//     forms is decided here and never falls through
//  6. Room-name decomposition (building part + room-number suffix)
//  7. Keyword heuristic on common suffix syllables
//
// Strategies 6 and 7 are table-driven approximations, not a phonetic
// engine; false positives from stray syllables are accepted.
func IsMatch(name, query string) bool {
	if query == "" {
		return true
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	nameLower := strings.ToLower(name)

	// 直接包含匹配
	if strings.Contains(nameLower, queryLower) || strings.Contains(name, query) {
		return true
	}

	// 数字匹配
	if stringutil.IsNumeric(query) && strings.Contains(name, query) {
		return true
	}

	// 英文字母匹配
	if stringutil.IsASCIIAlpha(query) && strings.Contains(nameLower, queryLower) {
		return true
	}

	// 拼音匹配
	if forms, ok := formsByName[name]; ok {
		return matchesAnyForm(forms, queryLower)
	}

	// 教室名称拼音匹配（如正心101）
	if roomNamePattern.MatchString(name) {
		return matchRoomName(name, queryLower)
	}

	// 通用拼音匹配规则
	return generalPinyinMatch(name, queryLower)
}

// NormalizeQuery folds full-width ASCII (ｚｘｌ, ３０５) to its narrow
// form and trims whitespace, so IME-shaped input matches the tables.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(width.Narrow.String(query))
}

// FilterBuildings returns the names matching the query, preserving
// input order. The query is width-normalized first.
func FilterBuildings(names []string, query string) []string {
	query = NormalizeQuery(query)
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if IsMatch(name, query) {
			matched = append(matched, name)
		}
	}
	return matched
}

// SearchKeywords returns every term that finds the named building: the
// name itself plus its registered romanized forms, duplicate-free.
func SearchKeywords(name string) []string {
	keywords := []string{name}
	if forms, ok := formsByName[name]; ok {
		keywords = append(keywords, forms...)
	}
	return sliceutil.Deduplicate(keywords, func(s string) string { return s })
}

func matchesAnyForm(forms []string, query string) bool {
	for _, form := range forms {
		if strings.Contains(form, query) || strings.HasPrefix(form, query) || fuzzyEqual(form, query) {
			return true
		}
	}
	return false
}

// fuzzyEqual strips romanization delimiters from both sides and checks
// mutual substring containment.
func fuzzyEqual(form, query string) bool {
	cleanForm := stringutil.StripDelims(form)
	cleanQuery := stringutil.StripDelims(query)
	return strings.Contains(cleanForm, cleanQuery) || strings.Contains(cleanQuery, cleanForm)
}

// matchRoomName splits a room identifier into its building-name part
// and room-number part, then matches the building part against the
// registered forms with the room number appended (zhengxin101 finds
// 正心101).
func matchRoomName(roomName, query string) bool {
	buildingPart := asciiAlnumRuns.ReplaceAllString(roomName, "")
	roomNumberPart := strings.ToLower(hanRuns.ReplaceAllString(roomName, ""))

	for _, e := range buildingForms {
		if e.Name != buildingPart && !strings.Contains(buildingPart, e.Name) {
			continue
		}
		for _, form := range e.Forms {
			full := form + roomNumberPart
			if query == full || strings.Contains(query, form) || strings.Contains(full, query) {
				return true
			}
		}
	}

	return generalRoomNameMatch(buildingPart, roomNumberPart, query)
}

// generalRoomNameMatch is the keyword-level fallback for room names
// whose building has no registered forms.
func generalRoomNameMatch(buildingPart, roomNumberPart, query string) bool {
	for _, keyword := range roomKeywords {
		if !strings.Contains(query, keyword) || !nameContainsKeyword(buildingPart, keyword) {
			continue
		}
		if roomNumberPart != "" && strings.Contains(query, roomNumberPart) {
			return true
		}
		return len(query) >= len(keyword)
	}
	return false
}

// generalPinyinMatch is the last-resort heuristic: queries carrying a
// building-type suffix syllable are matched at the keyword level.
func generalPinyinMatch(name, query string) bool {
	for _, suffix := range suffixSyllables {
		if strings.Contains(query, suffix) {
			return containsKeywordMatch(name, query)
		}
	}
	return false
}

func containsKeywordMatch(name, query string) bool {
	for _, kw := range keywordChars {
		if strings.Contains(query, kw.Syllable) && nameContainsKeyword(name, kw.Syllable) {
			return true
		}
	}
	return false
}

// nameContainsKeyword reports whether the name contains any Chinese
// character the syllable is registered to transliterate.
func nameContainsKeyword(name, syllable string) bool {
	for _, kw := range keywordChars {
		if kw.Syllable != syllable {
			continue
		}
		for _, ch := range kw.Chars {
			if strings.Contains(name, ch) {
				return true
			}
		}
	}
	return false
}
