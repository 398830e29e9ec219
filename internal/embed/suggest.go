package embed

import "strings"

// Tokens is the placeholder vocabulary offered by autocomplete.
var Tokens = []string{
	"{size}",
	"{username}",
	"{filename}",
	"{uploads}",
	"{date}",
	"{time}",
	"{timestamp}",
	"{domain}",
}

// Suggest lists the tokens that complete the word being typed. Only a last
// word opening with "{" in an input not already closed with "}" triggers
// suggestions.
func Suggest(input string) []string {
	if strings.HasSuffix(input, "}") {
		return nil
	}
	word := lastWord(input)
	if !strings.HasPrefix(word, "{") {
		return nil
	}

	var out []string
	for _, t := range Tokens {
		if strings.HasPrefix(t, word) {
			out = append(out, t)
		}
	}
	return out
}

// Complete appends token to current. A partially typed token is finished
// rather than duplicated, and an empty or default field is replaced.
func Complete(current, token string) string {
	if current == "" || current == DefaultValue {
		return token
	}
	if word := lastWord(current); word != "" && strings.HasPrefix(token, word) {
		return current + token[len(word):]
	}
	return current + token
}

func lastWord(s string) string {
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}
