package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/extractor.txt
	extractorRaw string

	//go:embed template/router.txt
	routerRaw string

	//go:embed template/summarizer.txt
	summarizerRaw string

	//go:embed template/invoice.txt
	invoiceRaw string

	//go:embed template/music.txt
	musicRaw string

	//go:embed template/generic.txt
	genericRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Extractor  string
	Router     string
	Summarizer string
	Invoice    string
	Music      string
	Generic    string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Extractor:  strings.TrimSpace(extractorRaw),
		Router:     strings.TrimSpace(routerRaw),
		Summarizer: strings.TrimSpace(summarizerRaw),
		Invoice:    strings.TrimSpace(invoiceRaw),
		Music:      strings.TrimSpace(musicRaw),
		Generic:    strings.TrimSpace(genericRaw),
	}
}
