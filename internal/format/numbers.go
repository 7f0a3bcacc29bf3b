package format

import "strings"

// collapseNumbers renders runs of two or more consecutive digit-words as the
// concatenated digit string. "dot"/"period" between digit-words acts as a
// decimal or IP separator. A single isolated digit-word stays English prose:
// "five files" survives, "one two seven dot zero dot zero dot one" becomes
// "127.0.0.1". Fixed numeric idioms (spoken port numbers) short-circuit the
// scan.
func collapseNumbers(text string) string {
	for _, idiom := range numericIdioms {
		text = wholePhraseRe(idiom.spoken).ReplaceAllString(text, idiom.digits)
	}

	words := strings.Fields(text)
	out := make([]string, 0, len(words))

	for i := 0; i < len(words); {
		d, ok := digitWords[words[i]]
		if !ok {
			out = append(out, words[i])
			i++
			continue
		}

		var run strings.Builder
		run.WriteString(d)
		digits := 1
		j := i + 1
		for j < len(words) {
			if nd, ok := digitWords[words[j]]; ok {
				run.WriteString(nd)
				digits++
				j++
				continue
			}
			// A separator is only consumed between two digit-words.
			if (words[j] == "dot" || words[j] == "period") && j+1 < len(words) {
				if nd, ok := digitWords[words[j+1]]; ok {
					run.WriteString(".")
					run.WriteString(nd)
					digits++
					j += 2
					continue
				}
			}
			break
		}

		if digits >= 2 {
			out = append(out, run.String())
			i = j
		} else {
			out = append(out, words[i])
			i++
		}
	}

	return strings.Join(out, " ")
}
