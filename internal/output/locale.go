package output

import (
	"embed"
	"errors"
	"fmt"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// ErrUnknownLanguage is returned for a language without a catalogue.
var ErrUnknownLanguage = errors.New("unknown language")

// Languages lists the available catalogues.
var Languages = []string{"en", "nl"}

// catalogue loads the embedded translations for lang.
func catalogue(lang string) (*gotext.Po, error) {
	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	po := gotext.NewPo()
	po.Parse(data)

	return po, nil
}
