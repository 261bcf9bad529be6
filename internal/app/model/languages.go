package model

import "strings"

// SupportedLanguages are the recognizer language tags offered to the user.
// The first entry is the default.
var SupportedLanguages = []string{
	"es-CL", "es-ES", "es-MX", "es-AR",
	"en-US", "en-GB",
	"fr-FR", "de-DE", "it-IT", "pt-BR",
}

// AcceptedExtensions are the upload extensions admitted into a batch,
// lower-cased with the leading dot.
var AcceptedExtensions = []string{
	".mp3", ".wav", ".m4a", ".ogg", ".opus", ".oga", ".flac", ".aac",
}

// IsSupportedLanguage reports whether tag is one of SupportedLanguages.
func IsSupportedLanguage(tag string) bool {
	for _, l := range SupportedLanguages {
		if l == tag {
			return true
		}
	}
	return false
}

// IsAcceptedFilename reports whether the filename carries an accepted
// audio extension.
func IsAcceptedFilename(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AcceptedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
