// Package postprocess strips common chat-model artifacts from raw
// generative responses before the literal/poetic sections are extracted.
package postprocess

import (
	"regexp"
	"strings"
)

// thinkingRe matches complete <think>/<thinking>/<reasoning> blocks. Each
// tag variant is listed explicitly; RE2 has no backreferences.
var thinkingRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// danglingThinkingRe matches an opened thinking tag that was never closed
// (the model was cut off mid-thought).
var danglingThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

// echoRe matches introductory phrases some models prepend even when told
// not to. Anchored to the start and requiring a colon to avoid eating
// legitimate content.
var echoRe = regexp.MustCompile(
	`(?i)^(?:(?:certainly|sure|of course)[,.]? )?here(?:'s| is)(?: the)? (?:literal |poetic |translated )?(?:translation|rendering|text)\s*:`,
)

// Clean removes thinking blocks, instruction echoes and whole-text quote
// wrapping, returning the trimmed result.
func Clean(text string) string {
	text = thinkingRe.ReplaceAllString(text, "")
	text = danglingThinkingRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if loc := echoRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}

	return unquote(text)
}

// unquote strips one matching pair of outer quotes when the entire text is
// wrapped in them.
func unquote(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
