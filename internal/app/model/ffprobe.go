package model

// FFProbeOutput mirrors the subset of `ffprobe -print_format json` output the
// validator reads.
type FFProbeOutput struct {
	Streams []FFProbeStream `json:"streams"`
	Format  FFProbeFormat   `json:"format"`
}

type FFProbeStream struct {
	CodecType  string  `json:"codec_type"`
	CodecName  string  `json:"codec_name"`
	SampleRate int     `json:"sample_rate,string"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration,string"`
}

type FFProbeFormat struct {
	Duration float64 `json:"duration,string"`
	Size     int64   `json:"size,string"`
}
