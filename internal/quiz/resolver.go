package quiz

import "strings"

// NormalizeText trims surrounding whitespace and lowercases s.
// It is used for comparisons only; displayed text keeps its case.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect reports whether a submitted value matches the correct value.
// Comparison is case-insensitive and ignores surrounding whitespace.
// An empty correct value never matches.
func IsCorrect(submitted, correct string) bool {
	want := NormalizeText(correct)
	if want == "" {
		return false
	}
	return NormalizeText(submitted) == want
}

// ResolveSide returns the box a word belongs to.
//
// An explicit key on the question wins. Without one, a question with
// exactly two options puts the first option on the left and the second on
// the right. Anything else resolves to SideUnknown, which never matches a
// box.
func ResolveSide(q Question, word string) Side {
	w := NormalizeText(word)
	if w == "" {
		return SideUnknown
	}
	if len(q.Key) > 0 {
		return keySide(q.Key, w)
	}
	if len(q.Options) == 2 {
		switch w {
		case NormalizeText(q.Options[0]):
			return SideLeft
		case NormalizeText(q.Options[1]):
			return SideRight
		}
	}
	return SideUnknown
}

// keySide looks w up in key. Normalized keys hit directly; otherwise every
// entry is compared, and entries that disagree resolve to SideUnknown.
func keySide(key map[string]Side, w string) Side {
	side, ok := key[w]
	if !ok {
		side = SideUnknown
		for k, s := range key {
			if NormalizeText(k) != w {
				continue
			}
			if ok && s != side {
				return SideUnknown
			}
			side, ok = s, true
		}
	}
	if side == SideLeft || side == SideRight {
		return side
	}
	return SideUnknown
}

// optionIndex returns the index of the option matching value, or -1.
func optionIndex(options []string, value string) int {
	v := NormalizeText(value)
	for i, opt := range options {
		if NormalizeText(opt) == v {
			return i
		}
	}
	return -1
}
