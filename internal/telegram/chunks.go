package telegram

// Limite por mensagem do transporte (4096), com folga.
const maxMessageLen = 3800

// splitIntoChunks fatia o texto em pedaços contíguos de até max runas.
// Corte fixo, sem respeitar fronteira de palavra; a concatenação dos
// pedaços reproduz o original.
func splitIntoChunks(s string, max int) []string {
	if max <= 0 {
		return []string{s}
	}

	runes := []rune(s)
	out := make([]string, 0, (len(runes)+max-1)/max)
	for i := 0; i < len(runes); i += max {
		end := i + max
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
