package model

import "strconv"

type FFProbeStream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate int    `json:"sample_rate,string"`
	Channels   int    `json:"channels"`
}

type FFProbeOutput struct {
	Streams []FFProbeStream `json:"streams"`
	Format  struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// AudioStreams returns the streams ffprobe reports as audio
func (o *FFProbeOutput) AudioStreams() []FFProbeStream {
	var audio []FFProbeStream
	for _, s := range o.Streams {
		if s.CodecType == "audio" {
			audio = append(audio, s)
		}
	}
	return audio
}

// DurationSeconds parses the container duration; 0 when unknown
func (o *FFProbeOutput) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(o.Format.Duration, 64)
	if err != nil {
		return 0
	}
	return d
}
