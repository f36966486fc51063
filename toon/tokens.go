package toon

// ============================================================
// Token Estimation
// ============================================================
//
// Byte-based token heuristics in the style of cl100k tokenizers:
// structural punctuation tends to get its own token, words and digit
// runs pack roughly four characters per token. Good enough to compare
// renderings; not a tokenizer.

// Savings reports the size of a value rendered as minified JSON versus
// TOON, in bytes and estimated tokens.
type Savings struct {
	JSONBytes  int
	ToonBytes  int
	JSONTokens int
	ToonTokens int
}

// BytesPct returns the byte savings as a percentage of the JSON size.
func (s Savings) BytesPct() float64 {
	if s.JSONBytes == 0 {
		return 0
	}
	return float64(s.JSONBytes-s.ToonBytes) / float64(s.JSONBytes) * 100
}

// TokensPct returns the token savings as a percentage of the JSON count.
func (s Savings) TokensPct() float64 {
	if s.JSONTokens == 0 {
		return 0
	}
	return float64(s.JSONTokens-s.ToonTokens) / float64(s.JSONTokens) * 100
}

// EstimateSavings encodes a value both ways and compares the results.
func EstimateSavings(v *Value, opts EncodeOptions) (Savings, error) {
	jsonText, err := jsonLiteral(v)
	if err != nil {
		return Savings{}, wrapEncode(err)
	}
	toonText, err := EncodeWithOptions(v, opts)
	if err != nil {
		return Savings{}, err
	}

	return Savings{
		JSONBytes:  len(jsonText),
		ToonBytes:  len(toonText),
		JSONTokens: EstimateTokens(jsonText),
		ToonTokens: EstimateTokens(toonText),
	}, nil
}

// EstimateTokens approximates how many tokens a tokenizer would produce
// for s.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}

	tokens := 0
	i := 0
	for i < len(s) {
		c := s[i]

		// Punctuation/structural chars often get their own token.
		if isPunctuation(c) {
			tokens++
			i++
			continue
		}

		// Whitespace usually merges with adjacent tokens.
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		// Numbers: roughly 1 token per 4 digits.
		if c >= '0' && c <= '9' {
			numLen := 0
			for i < len(s) && isNumberChar(s[i]) {
				numLen++
				i++
			}
			tokens += (numLen + 3) / 4
			continue
		}

		// ASCII words: roughly 4 chars per token.
		if isWordChar(c) {
			wordLen := 0
			for i < len(s) && (isWordChar(s[i]) || (s[i] >= '0' && s[i] <= '9')) {
				wordLen++
				i++
			}
			tokens += (wordLen + 3) / 4
			continue
		}

		// Other: count as single token.
		tokens++
		i++
	}

	if tokens < 1 {
		return 1
	}
	return tokens
}

func isPunctuation(c byte) bool {
	return c == '{' || c == '}' || c == '[' || c == ']' ||
		c == '(' || c == ')' || c == ':' || c == ',' ||
		c == '"' || c == '\'' || c == '=' || c == '@' ||
		c == '.' || c == ';' || c == '!' || c == '?'
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' ||
		c == 'e' || c == 'E'
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
