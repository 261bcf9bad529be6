package model

// AudioJob is one uploaded file on its way through the pipeline.
// Immutable after creation; owned by the runner processing it.
type AudioJob struct {
	SourceBytes      []byte
	Filename         string
	ClaimedExtension string
	DetectedFormat   FormatTag
	LanguageCode     string
}

// FormatTag is a best-guess source container format, e.g. "ogg", "wav",
// "mp3", or the lower-cased extension when no signature matched.
type FormatTag string

const (
	FormatOgg     FormatTag = "ogg"
	FormatWav     FormatTag = "wav"
	FormatMp3     FormatTag = "mp3"
	FormatFlac    FormatTag = "flac"
	FormatM4a     FormatTag = "m4a"
	FormatUnknown FormatTag = "unknown"
)

// IsOggFamily reports whether the tag names an Ogg-family container
// (ogg, opus, oga). Voice notes from messaging apps usually arrive in one.
func (t FormatTag) IsOggFamily() bool {
	switch t {
	case FormatOgg, "opus", "oga":
		return true
	}
	return false
}
