package backend

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rotisserie/eris"
)

// soundBank holds decoded PCM per sound id and hands out fresh players.
type soundBank struct {
	context *audio.Context
	volume  float64
	muted   bool
	pcm     map[string][]byte
}

func newSoundBank(ctx *audio.Context, volume float64) *soundBank {
	return &soundBank{
		context: ctx,
		volume:  volume,
		pcm:     make(map[string][]byte),
	}
}

// decode turns an encoded wav or ogg file into PCM at the context's sample rate.
func (b *soundBank) decode(id, url string, data []byte) error {
	if b.context == nil {
		b.pcm[id] = nil
		return nil
	}

	var stream io.Reader
	var err error
	switch ext := strings.ToLower(path.Ext(url)); ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(b.context.SampleRate(), bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(b.context.SampleRate(), bytes.NewReader(data))
	default:
		return eris.Errorf("unsupported audio format %q for %s", ext, id)
	}
	if err != nil {
		return eris.Wrapf(err, "failed to decode %s", url)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return eris.Wrapf(err, "failed to read decoded audio %s", url)
	}
	b.pcm[id] = decoded
	return nil
}

func (b *soundBank) has(id string) bool {
	_, ok := b.pcm[id]
	return ok
}

func (b *soundBank) play(id string) bool {
	pcm, ok := b.pcm[id]
	if !ok || b.context == nil || pcm == nil || b.muted {
		return false
	}
	p := b.context.NewPlayerFromBytes(pcm)
	p.SetVolume(b.volume)
	p.Play()
	return true
}

func (b *soundBank) len() int {
	return len(b.pcm)
}
