package argfile

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// CountTokens returns the number of space/tab separated runs in line.
func CountTokens(line []byte) int {
	n := 0
	inToken := false
	for _, c := range line {
		if isBlank(c) {
			inToken = false
			continue
		}
		if !inToken {
			n++
			inToken = true
		}
	}
	return n
}

// Split builds {prog, tok1, ..., tokN} from line. The vector is sized from a
// counting pass before any token is copied. There is no quoting or escaping.
func Split(prog string, line []byte) []string {
	argv := make([]string, 1, CountTokens(line)+1)
	argv[0] = prog

	i := 0
	for i < len(line) {
		for i < len(line) && isBlank(line[i]) {
			i++
		}
		start := i
		for i < len(line) && !isBlank(line[i]) {
			i++
		}
		if i > start {
			argv = append(argv, string(line[start:i]))
		}
	}
	return argv
}
