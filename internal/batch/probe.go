package batch

import (
	"context"

	"clipsplit/internal/media/ffprobe"
)

// MediaInfo is what a probe reports about one input.
type MediaInfo struct {
	Width  int
	Height int
	// AudioStreams is zero when "-map 0:a?" will select nothing.
	AudioStreams int
}

// Prober inspects an input before its jobs run.
type Prober interface {
	Probe(ctx context.Context, path string) (MediaInfo, error)
}

// FFprobe is the Prober backed by the ffprobe CLI.
type FFprobe struct {
	Binary string
}

// Probe returns the first video stream's size and the audio stream count.
func (p FFprobe) Probe(ctx context.Context, path string) (MediaInfo, error) {
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return MediaInfo{}, err
	}
	video, err := result.PrimaryVideo()
	if err != nil {
		return MediaInfo{}, err
	}
	return MediaInfo{
		Width:        video.Width,
		Height:       video.Height,
		AudioStreams: result.AudioStreamCount(),
	}, nil
}
