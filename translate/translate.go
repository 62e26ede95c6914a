// Package translate localizes the diagnostic strings the machine and its
// tools emit: fault messages, image syntax errors, and CLI output.
//
// Locale resolution is deferred until the first message is formatted. The
// vm and hostcall packages format their sentinel error messages during
// package initialization, so importing either of them resolves the locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// Tag prefixes locale-related log output and names the message domain for
// the gotext workflow.
const Tag = "cvere"

// Fallback is the locale assumed when none can be detected.
const Fallback = "en-US"

var (
	once    sync.Once
	printer *message.Printer
)

func resolve() *message.Printer {
	once.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("%s: locale: %v", Tag, err)
		}

		if len(locales) == 0 {
			locales = []string{Fallback}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return resolve().Sprintf(key, args...)
}
