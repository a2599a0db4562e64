package module

import "thaiproof/internal/platform/config"

// Options controls how the two checkers are assembled
type Options struct {
	// LexiconPath points at the word list file; empty disables the fuzzy
	// lexicon candidates (every unknown token is then a near miss of nothing
	// and goes unflagged by the primary)
	LexiconPath string

	// MarkURL is the external marker endpoint; empty falls back to a strict
	// lexicon pass as the secondary detector
	MarkURL string

	// MaxEditDistance is the typo radius for the fuzzy lexicon checker
	MaxEditDistance int
}

// FromConfig reads Options from the CORE_SCAN_ namespace
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCAN_")
	return Options{
		LexiconPath:     sc.MayString("LEXICON_PATH", ""),
		MarkURL:         sc.MayString("MARK_URL", ""),
		MaxEditDistance: sc.MayInt("MAX_EDIT_DISTANCE", 2),
	}
}
