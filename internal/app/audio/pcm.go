package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// PCMData holds decoded signed 16-bit samples. Multi-channel audio is stored
// interleaved.
type PCMData struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// FrameCount returns the number of per-channel frames.
func (p *PCMData) FrameCount() int {
	if p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// DurationSeconds returns the audio duration derived from frame count.
func (p *PCMData) DurationSeconds() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(p.FrameCount()) / float64(p.SampleRate)
}

// DecodeWAV reads a RIFF/WAVE file containing 16-bit PCM. It walks the chunk
// list rather than assuming a 44-byte header, since encoders routinely insert
// LIST or fact chunks before the data.
func DecodeWAV(path string) (*PCMData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	fileSize := info.Size()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return nil, fmt.Errorf("wav header read: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		data          []byte
	)

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(f, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, err
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(chunkHeader[4:8]))

		// Declared sizes come from untrusted input. Clamp to the bytes the
		// file actually holds before allocating or indexing.
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		if remaining := fileSize - pos; chunkSize > remaining {
			chunkSize = remaining
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes, need 16", chunkSize)
			}
			fmtChunk := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, fmtChunk); err != nil {
				return nil, fmt.Errorf("fmt chunk read: %w", err)
			}
			format := binary.LittleEndian.Uint16(fmtChunk[0:2])
			if format != 1 {
				return nil, fmt.Errorf("unsupported wav format code %d, need PCM", format)
			}
			channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
		case "data":
			data = make([]byte, chunkSize)
			n, err := io.ReadFull(f, data)
			if err == io.ErrUnexpectedEOF {
				// Truncated data chunk, keep what we got.
				data = data[:n]
			} else if err != nil {
				return nil, fmt.Errorf("data chunk read: %w", err)
			}
		default:
			if _, err := f.Seek(chunkSize+chunkSize%2, io.SeekCurrent); err != nil {
				return nil, err
			}
			continue
		}
		if sampleRate != 0 && data != nil {
			break
		}
	}

	if sampleRate == 0 || channels == 0 {
		return nil, fmt.Errorf("wav file has no fmt chunk")
	}
	if bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported sample width %d bits, need 16", bitsPerSample)
	}
	if data == nil {
		return nil, fmt.Errorf("wav file has no data chunk")
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i : 2*i+2]))
	}

	return &PCMData{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// Downmix averages interleaved channels into mono.
func (p *PCMData) Downmix() *PCMData {
	if p.Channels <= 1 {
		return p
	}
	frames := p.FrameCount()
	out := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum int
		for c := 0; c < p.Channels; c++ {
			sum += int(p.Samples[i*p.Channels+c])
		}
		out[i] = int16(sum / p.Channels)
	}
	return &PCMData{Samples: out, SampleRate: p.SampleRate, Channels: 1}
}

// Resample converts mono audio to targetRate via linear interpolation. Good
// enough for speech going into a recognizer; not meant for music.
func (p *PCMData) Resample(targetRate int) *PCMData {
	if p.SampleRate == targetRate || p.SampleRate == 0 {
		return p
	}
	srcFrames := p.FrameCount()
	dstFrames := int(float64(srcFrames) * float64(targetRate) / float64(p.SampleRate))
	out := make([]int16, dstFrames)
	ratio := float64(p.SampleRate) / float64(targetRate)
	for i := 0; i < dstFrames; i++ {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= srcFrames-1 {
			out[i] = p.Samples[srcFrames-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(p.Samples[idx])
		b := float64(p.Samples[idx+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return &PCMData{Samples: out, SampleRate: targetRate, Channels: 1}
}

// Normalize scales samples so that the peak sits at about 91% of full scale,
// leaving headroom against clipping after interpolation.
func (p *PCMData) Normalize() *PCMData {
	var peak int16
	for _, s := range p.Samples {
		if s == math.MinInt16 {
			peak = math.MaxInt16
			break
		}
		if abs := s; abs < 0 {
			if -abs > peak {
				peak = -abs
			}
		} else if abs > peak {
			peak = abs
		}
	}
	if peak == 0 || peak >= 29000 {
		return p
	}
	gain := 30000.0 / float64(peak)
	out := make([]int16, len(p.Samples))
	for i, s := range p.Samples {
		v := float64(s) * gain
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return &PCMData{Samples: out, SampleRate: p.SampleRate, Channels: p.Channels}
}

// RMS returns the root-mean-square energy of up to maxFrames leading frames.
// Used for ambient-noise calibration.
func (p *PCMData) RMS(maxFrames int) float64 {
	n := len(p.Samples)
	if maxFrames > 0 && maxFrames*p.Channels < n {
		n = maxFrames * p.Channels
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for _, s := range p.Samples[:n] {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(n))
}

// WriteWAV writes mono 16-bit PCM to path in the canonical WAV layout.
func WriteWAV(path string, p *PCMData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dataSize := len(p.Samples) * 2
	if err := writeWAVHeader(f, p.SampleRate, p.Channels, dataSize); err != nil {
		return err
	}

	buf := make([]byte, dataSize)
	for i, s := range p.Samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	_, err = f.Write(buf)
	return err
}

// WrapRawPCM wraps a headerless s16le file into a WAV container. The second
// half of the two-stage raw strategy: by the time this runs, container
// parsing faults have already been absorbed by the raw decode.
func WrapRawPCM(rawPath, wavPath string, sampleRate, channels int) error {
	raw, err := os.Open(rawPath)
	if err != nil {
		return err
	}
	defer raw.Close()

	info, err := raw.Stat()
	if err != nil {
		return err
	}
	dataSize := int(info.Size())

	out, err := os.Create(wavPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := writeWAVHeader(out, sampleRate, channels, dataSize); err != nil {
		return err
	}
	_, err = io.Copy(out, raw)
	return err
}

func writeWAVHeader(w io.Writer, sampleRate, channels, dataSize int) error {
	blockAlign := channels * 2
	byteRate := sampleRate * blockAlign

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	_, err := w.Write(header[:])
	return err
}
