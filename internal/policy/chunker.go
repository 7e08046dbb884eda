package policy

// #region imports
import "strings"

// #endregion imports

// #region chunker

// splitDocument breaks a document into overlapping chunks of roughly
// chunkSize characters, preferring paragraph boundaries. The overlap carries
// the tail of the previous chunk so section headers stay attached to their
// first paragraphs.
func splitDocument(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var cur strings.Builder

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Oversized paragraph: hard-split on its own.
		if len(p) > chunkSize {
			flush()
			for start := 0; start < len(p); start += chunkSize - overlap {
				end := start + chunkSize
				if end > len(p) {
					end = len(p)
				}
				chunks = append(chunks, p[start:end])
				if end == len(p) {
					break
				}
			}
			continue
		}
		if cur.Len()+len(p)+2 > chunkSize && cur.Len() > 0 {
			tail := chunkTail(cur.String(), overlap)
			flush()
			if tail != "" {
				cur.WriteString(tail)
				cur.WriteString("\n\n")
			}
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	flush()

	return chunks
}

// chunkTail returns the last n characters of s, aligned to a line boundary
// where possible.
func chunkTail(s string, n int) string {
	if n == 0 || len(s) <= n {
		return ""
	}
	tail := s[len(s)-n:]
	if idx := strings.IndexByte(tail, '\n'); idx >= 0 && idx+1 < len(tail) {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}

// #endregion chunker
